package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/utils"
)

// mapNotFound converts a missing-row error on problem set resolution into
// the business error the API reports; anything else passes through as an
// infrastructure failure.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
	}
	return err
}

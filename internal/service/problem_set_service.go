package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/dto"
	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/repository"
	"github.com/openjudge-io/judge-api/internal/utils"
)

const tracerName = "github.com/openjudge-io/judge-api/internal/service"

// ProblemSetService exposes the problem set use cases: CRUD plus the
// transactional clone workflow.
type ProblemSetService interface {
	List(ctx context.Context, domainID, ownerID uint, page, pageSize int) (dto.ProblemSetListResponse, error)
	Create(ctx context.Context, domainID, ownerID uint, payload dto.ProblemSetCreateRequest) (dto.ProblemSetResponse, error)
	Get(ctx context.Context, domainID uint, ref string, viewerID uint) (dto.ProblemSetResponse, error)
	Update(ctx context.Context, domainID uint, ref string, payload dto.ProblemSetUpdateRequest) (dto.ProblemSetResponse, error)
	Delete(ctx context.Context, domainID uint, ref string) error
	Clone(ctx context.Context, targetDomainID, actorID uint, payload dto.ProblemSetCloneRequest) (dto.ProblemSetResponse, error)
}

type problemSetService struct {
	sets        repository.ProblemSetRepository
	tx          repository.TxManager
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	permissions PermissionChecker
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProblemSetService builds the problem set service.
func NewProblemSetService(sets repository.ProblemSetRepository, tx repository.TxManager, validate *validator.Validate, permissions PermissionChecker, events EventPublisher, logger zerolog.Logger) ProblemSetService {
	return &problemSetService{
		sets:        sets,
		tx:          tx,
		validator:   validate,
		sanitizer:   bluemonday.UGCPolicy(),
		permissions: permissions,
		events:      events,
		logger:      logger.With().Str("component", "problem_set_service").Logger(),
		now:         time.Now,
	}
}

func (s *problemSetService) List(ctx context.Context, domainID, ownerID uint, page, pageSize int) (dto.ProblemSetListResponse, error) {
	filter := repository.ProblemSetFilter{
		OwnerID:  &ownerID,
		Page:     page,
		PageSize: pageSize,
	}
	if domainID != 0 {
		filter.DomainID = &domainID
	}

	sets, total, err := s.sets.List(ctx, filter)
	if err != nil {
		return dto.ProblemSetListResponse{}, err
	}

	return dto.ProblemSetListResponse{
		Results: dto.NewProblemSetResponseSlice(sets),
		Total:   total,
	}, nil
}

func (s *problemSetService) Create(ctx context.Context, domainID, ownerID uint, payload dto.ProblemSetCreateRequest) (dto.ProblemSetResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemSetResponse{}, err
	}

	if payload.URL != "" && isReservedURL(payload.URL) {
		return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeInvalidURL, "url must not be numeric")
	}

	url := payload.URL
	generated := url == ""
	if generated {
		// Placeholder until the id is known; patched inside the same
		// transaction right after the insert.
		url = uuid.NewString()
	}

	set := models.ProblemSet{
		DomainID:         domainID,
		OwnerID:          ownerID,
		URL:              url,
		Title:            payload.Title,
		Content:          s.sanitizer.Sanitize(payload.Content),
		Hidden:           payload.Hidden,
		ScoreboardHidden: payload.ScoreboardHidden,
		AvailableTime:    payload.AvailableTime,
		DueTime:          payload.DueTime,
	}

	err := s.tx.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.CreateProblemSet(ctx, &set); err != nil {
			return err
		}
		if generated {
			set.URL = fmt.Sprintf("ps-%d", set.ID)
			return tx.UpdateProblemSet(ctx, &set)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeURLNotUnique, "url already taken in this domain")
		}
		s.logger.Error().Err(err).Str("title", payload.Title).Uint("domain_id", domainID).Msg("problem set creation failed")
		return dto.ProblemSetResponse{}, err
	}

	s.logger.Info().Uint("problem_set_id", set.ID).Str("url", set.URL).Uint("domain_id", domainID).Msg("problem set created")
	s.events.Publish(ctx, DomainEvent{
		Type:         EventProblemSetCreated,
		DomainID:     domainID,
		ProblemSetID: set.ID,
		ActorID:      ownerID,
	})

	return dto.NewProblemSetResponse(set), nil
}

func (s *problemSetService) Get(ctx context.Context, domainID uint, ref string, viewerID uint) (dto.ProblemSetResponse, error) {
	set, err := s.resolve(ctx, domainID, ref)
	if err != nil {
		return dto.ProblemSetResponse{}, err
	}

	if viewerID != set.OwnerID {
		now := s.now()
		if set.Hidden {
			return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
		if set.NotYetAvailable(now) {
			return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeProblemSetBeforeAvTime, "problem set is not yet available")
		}
		if set.PastDue(now) {
			return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeProblemSetAfterDue, "problem set is past due")
		}
	}

	return dto.NewProblemSetResponse(set), nil
}

func (s *problemSetService) Update(ctx context.Context, domainID uint, ref string, payload dto.ProblemSetUpdateRequest) (dto.ProblemSetResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemSetResponse{}, err
	}

	set, err := s.resolve(ctx, domainID, ref)
	if err != nil {
		return dto.ProblemSetResponse{}, err
	}

	if payload.Title != nil {
		set.Title = *payload.Title
	}
	if payload.Content != nil {
		set.Content = s.sanitizer.Sanitize(*payload.Content)
	}
	if payload.Hidden != nil {
		set.Hidden = *payload.Hidden
	}
	if payload.ScoreboardHidden != nil {
		set.ScoreboardHidden = *payload.ScoreboardHidden
	}
	if payload.AvailableTime != nil {
		set.AvailableTime = *payload.AvailableTime
	}
	if payload.DueTime != nil {
		set.DueTime = *payload.DueTime
	}

	if err := s.sets.Update(ctx, &set); err != nil {
		return dto.ProblemSetResponse{}, err
	}

	s.logger.Info().Uint("problem_set_id", set.ID).Msg("problem set updated")

	return dto.NewProblemSetResponse(set), nil
}

func (s *problemSetService) Delete(ctx context.Context, domainID uint, ref string) error {
	set, err := s.resolve(ctx, domainID, ref)
	if err != nil {
		return err
	}

	if err := s.sets.Delete(ctx, set.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
		return err
	}

	s.logger.Info().Uint("problem_set_id", set.ID).Uint("domain_id", domainID).Msg("problem set deleted")
	return nil
}

// Clone duplicates a problem set and all its problems into the target domain
// inside one transaction. Problem groups are shared, never duplicated, and
// every copied problem points at the newly created set.
func (s *problemSetService) Clone(ctx context.Context, targetDomainID, actorID uint, payload dto.ProblemSetCloneRequest) (dto.ProblemSetResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemSetResponse{}, err
	}

	if payload.URL != "" && isReservedURL(payload.URL) {
		return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeInvalidURL, "url must not be numeric")
	}

	source, err := s.resolveSource(ctx, targetDomainID, actorID, payload.ProblemSet)
	if err != nil {
		return dto.ProblemSetResponse{}, err
	}

	url := payload.URL
	if url == "" {
		url = fmt.Sprintf("%s_%d", source.URL, s.now().UnixNano())
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "problem_set.clone")
	span.SetAttributes(
		attribute.Int64("problem_set.source_id", int64(source.ID)),
		attribute.Int64("problem_set.target_domain_id", int64(targetDomainID)),
	)
	defer span.End()

	newSet := models.ProblemSet{
		DomainID:         targetDomainID,
		OwnerID:          actorID,
		URL:              url,
		Title:            source.Title,
		Content:          source.Content,
		Hidden:           source.Hidden,
		ScoreboardHidden: source.ScoreboardHidden,
		AvailableTime:    source.AvailableTime,
		DueTime:          source.DueTime,
	}

	copied := 0
	err = s.tx.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.CreateProblemSet(ctx, &newSet); err != nil {
			return err
		}

		return tx.EachProblemBySet(ctx, source.ID, func(problem models.Problem) error {
			group, err := tx.GetProblemGroup(ctx, problem.ProblemGroupID)
			if err != nil {
				return fmt.Errorf("resolve problem group %d: %w", problem.ProblemGroupID, err)
			}

			clone := models.Problem{
				DomainID:       targetDomainID,
				OwnerID:        actorID,
				ProblemSetID:   newSet.ID,
				ProblemGroupID: group.ID,
				Title:          problem.Title,
				Content:        problem.Content,
				Data:           problem.Data,
				DataVersion:    problem.DataVersion,
				Languages:      problem.Languages,
			}
			if err := tx.CreateProblem(ctx, &clone); err != nil {
				return err
			}
			copied++
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "clone failed")
		s.logger.Error().Err(err).
			Uint("source_problem_set_id", source.ID).
			Uint("target_domain_id", targetDomainID).
			Msg("problem set clone failed")
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ProblemSetResponse{}, utils.NewBizError(utils.CodeURLNotUnique, "url already taken in this domain")
		}
		return dto.ProblemSetResponse{}, err
	}

	s.logger.Info().
		Uint("problem_set_id", newSet.ID).
		Uint("source_problem_set_id", source.ID).
		Uint("domain_id", targetDomainID).
		Int("problems_copied", copied).
		Msg("problem set cloned")
	s.events.Publish(ctx, DomainEvent{
		Type:         EventProblemSetCloned,
		DomainID:     targetDomainID,
		ProblemSetID: newSet.ID,
		ActorID:      actorID,
	})

	return dto.NewProblemSetResponse(newSet), nil
}

func (s *problemSetService) resolve(ctx context.Context, domainID uint, ref string) (models.ProblemSet, error) {
	set, err := s.sets.GetByRef(ctx, domainID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProblemSet{}, utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
		return models.ProblemSet{}, err
	}
	return set, nil
}

// resolveSource accepts either a global numeric id, allowing clones across
// domains, or a url resolved within the target domain. A cross-domain source
// requires problem view permission in the source domain; hidden sources stay
// invisible to everyone but their owner.
func (s *problemSetService) resolveSource(ctx context.Context, domainID, actorID uint, ref string) (models.ProblemSet, error) {
	id, parseErr := strconv.ParseUint(ref, 10, 64)
	if parseErr != nil {
		return s.resolve(ctx, domainID, ref)
	}

	set, err := s.sets.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProblemSet{}, utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
		return models.ProblemSet{}, err
	}

	if set.DomainID != domainID && actorID != set.OwnerID {
		if set.Hidden {
			return models.ProblemSet{}, utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
		allowed, err := s.permissions.HasPermission(ctx, actorID, set.DomainID, models.PermDomainProblemView)
		if err != nil {
			return models.ProblemSet{}, err
		}
		if !allowed {
			// Not found rather than forbidden, so probing ids leaks nothing.
			return models.ProblemSet{}, utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")
		}
	}

	return set, nil
}

// isReservedURL reports whether the url collides with the numeric id
// namespace used by reference resolution.
func isReservedURL(url string) bool {
	_, err := strconv.ParseUint(url, 10, 64)
	return err == nil
}

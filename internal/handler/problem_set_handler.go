package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/openjudge-io/judge-api/internal/dto"
	"github.com/openjudge-io/judge-api/internal/middleware"
	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/service"
	"github.com/openjudge-io/judge-api/internal/utils"
)

// PermissionGate builds the middleware guarding one permission; the router
// supplies it so handlers stay decoupled from the checker wiring.
type PermissionGate func(permission string) fiber.Handler

// ProblemSetHandler wires problem set HTTP routes.
type ProblemSetHandler struct {
	service     service.ProblemSetService
	scoreboards service.ScoreboardService
	logger      zerolog.Logger
}

// NewProblemSetHandler constructs the handler.
func NewProblemSetHandler(svc service.ProblemSetService, scoreboards service.ScoreboardService, logger zerolog.Logger) *ProblemSetHandler {
	return &ProblemSetHandler{
		service:     svc,
		scoreboards: scoreboards,
		logger:      logger.With().Str("component", "problem_set_handler").Logger(),
	}
}

// Register attaches problem set endpoints to the domain-scoped router group.
// The clone route must precede the :problem_set wildcard. scoreboardLimit
// throttles the aggregation endpoint and may be nil.
func (h *ProblemSetHandler) Register(router fiber.Router, gate PermissionGate, scoreboardLimit fiber.Handler) {
	if scoreboardLimit == nil {
		scoreboardLimit = func(c *fiber.Ctx) error { return c.Next() }
	}

	router.Get("", gate(models.PermDomainProblemView), h.list)
	router.Post("", gate(models.PermDomainProblemCreate), h.create)
	router.Post("/clone", gate(models.PermDomainProblemCreate), h.clone)
	router.Get("/:problem_set", gate(models.PermDomainProblemView), h.get)
	router.Patch("/:problem_set", gate(models.PermDomainProblemEdit), h.update)
	router.Delete("/:problem_set", gate(models.PermDomainProblemDelete), h.delete)
	router.Get("/:problem_set/scoreboard", gate(models.PermDomainRecordView), scoreboardLimit, h.scoreboard)
}

func (h *ProblemSetHandler) list(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendErrorCode(c, utils.CodeValidationError, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendErrorCode(c, utils.CodeValidationError, "invalid page_size")
	}

	listing, err := h.service.List(c.Context(), domain.ID, userIDFromContext(c), page, pageSize)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, listing)
}

func (h *ProblemSetHandler) create(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	var payload dto.ProblemSetCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorCode(c, utils.CodeValidationError, "malformed request body")
	}

	set, err := h.service.Create(c.Context(), domain.ID, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, set)
}

func (h *ProblemSetHandler) get(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	set, err := h.service.Get(c.Context(), domain.ID, c.Params("problem_set"), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, set)
}

func (h *ProblemSetHandler) update(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	var payload dto.ProblemSetUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorCode(c, utils.CodeValidationError, "malformed request body")
	}

	set, err := h.service.Update(c.Context(), domain.ID, c.Params("problem_set"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, set)
}

func (h *ProblemSetHandler) delete(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	if err := h.service.Delete(c.Context(), domain.ID, c.Params("problem_set")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendEmpty(c)
}

func (h *ProblemSetHandler) clone(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	var payload dto.ProblemSetCloneRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorCode(c, utils.CodeValidationError, "malformed request body")
	}

	set, err := h.service.Clone(c.Context(), domain.ID, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, set)
}

func (h *ProblemSetHandler) scoreboard(c *fiber.Ctx) error {
	domain, ok := middleware.DomainFromContext(c)
	if !ok {
		return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
	}

	board, err := h.scoreboards.Get(c.Context(), domain.ID, c.Params("problem_set"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendData(c, board)
}

func (h *ProblemSetHandler) handleError(c *fiber.Ctx, err error) error {
	var biz *utils.BizError
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &biz):
		return utils.SendBizError(c, biz)
	case errors.As(err, &validationErrors):
		return utils.SendErrorCode(c, utils.CodeValidationError, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("internal server error")
		return utils.SendErrorCode(c, utils.CodeInternalServerError, "internal server error")
	}
}

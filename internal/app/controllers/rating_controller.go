package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// RatingController handles rating submission and average lookups
type RatingController struct {
	ratingService *services.RatingService
	logger        zerolog.Logger
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService *services.RatingService, logger zerolog.Logger) *RatingController {
	return &RatingController{
		ratingService: ratingService,
		logger:        logger,
	}
}

// SubmitRating stores a rating for the authenticated user
// @Summary Submit a rating
// @Description Rates a professor's teaching of a specific module instance. Resubmission overwrites the previous value.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitRatingRequest true "Rating submission"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitRatingResponse} "Rating stored"
// @Failure 400 {object} dto.ErrorResponse "Out-of-range rating or professor does not teach the instance"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Professor, module or module instance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ratings [post]
func (c *RatingController) SubmitRating(ctx *gin.Context) {
	var req dto.SubmitRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.ratingService.SubmitRating(ctx, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SubmitRatingResponse{Success: true},
		Timestamp: time.Now(),
	})
}

// ListProfessorRatings lists every professor with its average rating
// @Summary List professor ratings
// @Description Lists all professors with their rounded average rating (0 when unrated)
// @Tags ratings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfessorRatingResponse} "Professor ratings"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /professors/ratings [get]
func (c *RatingController) ListProfessorRatings(ctx *gin.Context) {
	ratings, err := c.ratingService.ListProfessorRatings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      ratings,
		Timestamp: time.Now(),
	})
}

// GetProfessorModuleRating returns a professor's average within one module
// @Summary Get a professor's average in a module
// @Description Returns the professor's rounded average rating pooled across all instances of the module (0 when unrated)
// @Tags ratings
// @Produce json
// @Param professorId path string true "Professor short code" example(JE1)
// @Param moduleCode path string true "Module short code" example(CD1)
// @Success 200 {object} dto.APIResponse{data=dto.ModuleRatingResponse} "Average rating"
// @Failure 404 {object} dto.ErrorResponse "Professor or module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /professors/{professorId}/modules/{moduleCode}/rating [get]
func (c *RatingController) GetProfessorModuleRating(ctx *gin.Context) {
	professorID := ctx.Param("professorId")
	moduleCode := ctx.Param("moduleCode")

	rating, err := c.ratingService.AverageForProfessorInModule(ctx, professorID, moduleCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ModuleRatingResponse{Rating: rating},
		Timestamp: time.Now(),
	})
}

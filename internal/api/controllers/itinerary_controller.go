package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamly/internal/models/request_models"
	"roamly/internal/services"
	"roamly/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// Generate godoc
// @Summary Generate a full AI itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Trip parameters"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /itineraries/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, itinerary, "Itinerary generated successfully")
}

// List godoc
// @Summary List the caller's itineraries
// @Tags Itineraries
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /itineraries [get]
func (i *ItineraryController) List(c *gin.Context) {
	summaries, err := i.itineraryService.ListUserItineraries(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summaries, "OK")
}

// Get godoc
// @Summary Fetch one itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) Get(c *gin.Context) {
	itinerary, err := i.itineraryService.GetItineraryByID(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "OK")
}

// GenerateHotels godoc
// @Summary Generate hotel suggestions for an itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary id"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id}/hotels [post]
func (i *ItineraryController) GenerateHotels(c *gin.Context) {
	itinerary, err := i.itineraryService.GenerateHotels(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, itinerary, "Hotel suggestions generated successfully")
}

// GenerateFlights godoc
// @Summary Generate flight options for an itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary id"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id}/flights [post]
func (i *ItineraryController) GenerateFlights(c *gin.Context) {
	itinerary, err := i.itineraryService.GenerateFlights(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, itinerary, "Flight options generated successfully")
}

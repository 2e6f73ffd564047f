package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/models/request_models"
	"roamly/internal/models/response_models"
	"roamly/internal/prompts"
	"roamly/internal/repositories"
	"roamly/pkg/aigateway"
	"roamly/pkg/utils"
)

// enrichmentCost is the fixed price of the hotel and flight generations; the
// full itinerary is priced by the plan's CreditCostPerTrip.
const enrichmentCost = 5

// userGateItineraryCost is the user-snapshot gate for a full generation. The
// snapshot is display-only; the plan balance is the one debited atomically.
const userGateItineraryCost = 10

const listLimit = 50

const promptSnippetLimit = 500

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, userID string, req request_models.GenerateItineraryRequest) (*dbm.Itinerary, error)
	GenerateHotels(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error)
	GenerateFlights(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error)
	ListUserItineraries(ctx context.Context, userID string) ([]response_models.ItinerarySummary, error)
	GetItineraryByID(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error)
}

type ItineraryService struct {
	accountRepo   repositories.AccountRepository
	planRepo      repositories.PlanRepository
	itineraryRepo repositories.ItineraryRepository
	gateway       aigateway.Gateway
}

func NewItineraryService(
	accountRepo repositories.AccountRepository,
	planRepo repositories.PlanRepository,
	itineraryRepo repositories.ItineraryRepository,
	gateway aigateway.Gateway,
) ItineraryServiceInterface {
	return &ItineraryService{
		accountRepo:   accountRepo,
		planRepo:      planRepo,
		itineraryRepo: itineraryRepo,
		gateway:       gateway,
	}
}

// generatedItinerary is the shape the model is instructed to emit for a full
// generation. Omitted fields fall back to the caller-supplied parameters.
type generatedItinerary struct {
	Title        string             `json:"title"`
	Origin       string             `json:"origin"`
	Destination  string             `json:"destination"`
	DurationDays int                `json:"durationDays"`
	TripType     string             `json:"tripType"`
	Days         []dbm.ItineraryDay `json:"days"`
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, userID string, req request_models.GenerateItineraryRequest) (*dbm.Itinerary, error) {
	userUUID, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}

	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	user, plan, err := s.checkEntitlement(ctx, userUUID, userGateItineraryCost, 0)
	if err != nil {
		return nil, err
	}
	if plan.AICredits < plan.CreditCostPerTrip {
		return nil, utils.ErrInsufficientCredits
	}

	prompt := prompts.Build(prompts.KindItinerary, prompts.Input{
		Origin:       req.Origin,
		Destination:  req.Destination,
		DurationDays: req.DurationDays,
		Budget:       req.Budget,
		TripType:     req.TripType,
		Preferences:  req.Preferences,
		Interests:    req.Interests,
	})

	result, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload := recoverPayload(result)
	if payload == nil {
		return nil, utils.NewModelOutputError(result.Raw)
	}

	var gen generatedItinerary
	if err := json.Unmarshal(payload, &gen); err != nil {
		return nil, utils.NewModelOutputError(result.Raw)
	}

	itinerary := s.buildItinerary(user.ID, req, gen, prompt, result.Raw)
	if err := s.itineraryRepo.Insert(ctx, itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Debit strictly after persistence: a crash here leaves the user
	// under-charged, never charged for a trip they did not get.
	if err := s.debitAndRefresh(ctx, user, plan.ID, plan.CreditCostPerTrip, func(ctx context.Context) {
		_ = s.itineraryRepo.Delete(ctx, itinerary.ID)
	}); err != nil {
		return nil, err
	}

	return itinerary, nil
}

func (s *ItineraryService) GenerateHotels(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error) {
	userUUID, itinerary, err := s.loadOwnedItinerary(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}

	user, plan, err := s.checkEntitlement(ctx, userUUID, enrichmentCost, enrichmentCost)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Build(prompts.KindHotels, prompts.Input{Destination: itinerary.Destination})

	result, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	hotels, err := recoverHotels(result)
	if err != nil {
		return nil, err
	}

	prevHotels, prevStage := itinerary.HotelSuggestions, itinerary.GenerationStage

	stage := dbm.StageHotels
	if len(itinerary.Flights) > 0 {
		stage = dbm.StageCompleted
	}
	if err := s.itineraryRepo.ReplaceHotelSuggestions(ctx, itinerary.ID, hotels, stage); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.debitAndRefresh(ctx, user, plan.ID, enrichmentCost, func(ctx context.Context) {
		_ = s.itineraryRepo.ReplaceHotelSuggestions(ctx, itinerary.ID, prevHotels, prevStage)
	}); err != nil {
		return nil, err
	}

	itinerary.HotelSuggestions = hotels
	itinerary.GenerationStage = stage
	return itinerary, nil
}

func (s *ItineraryService) GenerateFlights(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error) {
	userUUID, itinerary, err := s.loadOwnedItinerary(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}

	user, plan, err := s.checkEntitlement(ctx, userUUID, enrichmentCost, enrichmentCost)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Build(prompts.KindFlights, prompts.Input{
		Origin:      itinerary.Origin,
		Destination: itinerary.Destination,
	})

	result, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	flights, err := recoverFlights(result)
	if err != nil {
		return nil, err
	}

	prevFlights, prevStage := itinerary.Flights, itinerary.GenerationStage

	stage := dbm.StageFlights
	if len(itinerary.HotelSuggestions) > 0 {
		stage = dbm.StageCompleted
	}
	if err := s.itineraryRepo.ReplaceFlights(ctx, itinerary.ID, flights, stage); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.debitAndRefresh(ctx, user, plan.ID, enrichmentCost, func(ctx context.Context) {
		_ = s.itineraryRepo.ReplaceFlights(ctx, itinerary.ID, prevFlights, prevStage)
	}); err != nil {
		return nil, err
	}

	itinerary.Flights = flights
	itinerary.GenerationStage = stage
	return itinerary, nil
}

func (s *ItineraryService) ListUserItineraries(ctx context.Context, userID string) ([]response_models.ItinerarySummary, error) {
	userUUID, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}

	itineraries, err := s.itineraryRepo.ListByUserID(ctx, userUUID, listLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.ItinerarySummary, 0, len(itineraries))
	for _, it := range itineraries {
		summaries = append(summaries, response_models.ItinerarySummary{
			ID:              it.ID.String(),
			Title:           it.Title,
			Origin:          it.Origin,
			Destination:     it.Destination,
			DurationDays:    it.DurationDays,
			GenerationStage: string(it.GenerationStage),
			CreatedAt:       it.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *ItineraryService) GetItineraryByID(ctx context.Context, userID string, itineraryID string) (*dbm.Itinerary, error) {
	userUUID, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(itineraryID)
	if err != nil {
		return nil, utils.ErrItineraryNotFound
	}

	itinerary, err := s.itineraryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	// Scoped to the caller: a foreign itinerary reads as absent here.
	if itinerary == nil || itinerary.UserID != userUUID {
		return nil, utils.ErrItineraryNotFound
	}
	return itinerary, nil
}

func parseCaller(userID string) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, utils.ErrUnauthenticated
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, utils.ErrUnauthenticated
	}
	return id, nil
}

func validateGenerateRequest(req request_models.GenerateItineraryRequest) error {
	var missing []string
	if req.Origin == "" && req.Destination == "" {
		missing = append(missing, "origin or destination")
	}
	if req.DurationDays <= 0 {
		missing = append(missing, "durationDays")
	}
	if req.Budget <= 0 {
		missing = append(missing, "budget")
	}
	if len(missing) > 0 {
		return utils.NewValidationError(missing...)
	}
	return nil
}

// checkEntitlement loads the caller and their plan and applies both credit
// gates: the denormalized user snapshot and the authoritative plan balance.
// Either can reject first. planGate of 0 skips the plan-side comparison, used
// when the cost is plan-defined and compared by the caller.
func (s *ItineraryService) checkEntitlement(ctx context.Context, userUUID uuid.UUID, userGate int64, planGate int64) (*dbm.User, *dbm.Plan, error) {
	user, err := s.accountRepo.FindByID(ctx, userUUID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, nil, utils.ErrAccountNotFound
	}
	if user.IsBlocked {
		return nil, nil, utils.ErrAccountBlocked
	}
	if user.SubscriptionPlanID == nil || user.SubscriptionCredits < userGate {
		return nil, nil, utils.ErrInsufficientCredits
	}

	plan, err := s.planRepo.FindByID(ctx, *user.SubscriptionPlanID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, nil, utils.ErrPlanNotFound
	}
	if planGate > 0 && plan.AICredits < planGate {
		return nil, nil, utils.ErrInsufficientCredits
	}

	return user, plan, nil
}

func (s *ItineraryService) loadOwnedItinerary(ctx context.Context, userID string, itineraryID string) (uuid.UUID, *dbm.Itinerary, error) {
	userUUID, err := parseCaller(userID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id, err := uuid.Parse(itineraryID)
	if err != nil {
		return uuid.Nil, nil, utils.ErrItineraryNotFound
	}

	itinerary, err := s.itineraryRepo.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return uuid.Nil, nil, utils.ErrItineraryNotFound
	}
	if itinerary.UserID != userUUID {
		return uuid.Nil, nil, utils.ErrNotItineraryOwner
	}
	return userUUID, itinerary, nil
}

// debitAndRefresh runs the atomic compare-and-decrement against the plan and
// refreshes the user's display snapshot on success. When the debit reports
// insufficient credits the caller lost a race to a concurrent generation; the
// compensate callback undoes the write that preceded the debit.
func (s *ItineraryService) debitAndRefresh(ctx context.Context, user *dbm.User, planID uuid.UUID, cost int64, compensate func(context.Context)) error {
	remaining, err := s.planRepo.DebitCredits(ctx, planID, cost)
	if err != nil {
		if err == utils.ErrInsufficientCredits || err == utils.ErrPlanNotFound {
			compensate(ctx)
			return err
		}
		log.Printf("credit debit failed for plan %s: %v", planID, err)
		return utils.ErrDatabaseError
	}

	if err := s.accountRepo.RefreshCreditSnapshot(ctx, user.ID, remaining); err != nil {
		log.Printf("credit snapshot refresh failed for user %s: %v", user.ID, err)
	}
	return nil
}

func (s *ItineraryService) buildItinerary(userID uuid.UUID, req request_models.GenerateItineraryRequest, gen generatedItinerary, prompt string, raw string) *dbm.Itinerary {
	destination := firstNonEmpty(gen.Destination, req.Destination)

	title := req.Title
	if title == "" {
		title = gen.Title
	}
	if title == "" {
		title = destination + " trip"
	}

	durationDays := gen.DurationDays
	if durationDays == 0 {
		durationDays = req.DurationDays
	}

	preferences := req.Preferences
	if preferences == nil {
		preferences = []string{}
	}
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	days := gen.Days
	if days == nil {
		days = []dbm.ItineraryDay{}
	}

	return &dbm.Itinerary{
		UserID:             userID,
		Title:              title,
		Origin:             firstNonEmpty(gen.Origin, req.Origin),
		Destination:        destination,
		DurationDays:       durationDays,
		Budget:             req.Budget,
		TripType:           firstNonEmpty(gen.TripType, req.TripType, "Standard"),
		Preferences:        preferences,
		Interests:          interests,
		Days:               days,
		HotelSuggestions:   []dbm.HotelSuggestion{},
		Flights:            []dbm.FlightOption{},
		CostBreakdown:      dbm.CostBreakdown{},
		TotalEstimatedCost: 0,
		GeneratedBy: dbm.Provenance{
			ModelName:     s.gateway.ModelName(),
			ModelVersion:  "unknown",
			PromptSnippet: truncate(prompt, promptSnippetLimit),
		},
		RawAIResponse:   raw,
		GenerationStage: dbm.StageDays,
	}
}

// recoverPayload runs the three-step extraction chain: the gateway's own
// best-effort parse, the raw text taken as-is when it already parses, then
// the defensive extractor for fenced or prose-wrapped output. Valid raw wins
// over extraction so bare-array responses survive intact.
func recoverPayload(result *aigateway.Result) json.RawMessage {
	if result.Parsed != nil {
		return result.Parsed
	}
	if trimmed := strings.TrimSpace(result.Raw); trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	if extracted := aigateway.ExtractJSON(result.Raw); extracted != nil {
		return extracted
	}
	return nil
}

func recoverHotels(result *aigateway.Result) ([]dbm.HotelSuggestion, error) {
	payload := recoverPayload(result)
	if payload == nil {
		return nil, utils.NewModelOutputError(result.Raw)
	}

	var envelope struct {
		Hotels []dbm.HotelSuggestion `json:"hotels"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Hotels != nil {
		return envelope.Hotels, nil
	}

	// Some model runs return the bare array without the envelope.
	var bare []dbm.HotelSuggestion
	if err := json.Unmarshal(payload, &bare); err == nil && bare != nil {
		return bare, nil
	}

	return nil, utils.NewModelOutputError(result.Raw)
}

func recoverFlights(result *aigateway.Result) ([]dbm.FlightOption, error) {
	payload := recoverPayload(result)
	if payload == nil {
		return nil, utils.NewModelOutputError(result.Raw)
	}

	var envelope struct {
		Flights []dbm.FlightOption `json:"flights"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Flights != nil {
		return envelope.Flights, nil
	}

	var bare []dbm.FlightOption
	if err := json.Unmarshal(payload, &bare); err == nil && bare != nil {
		return bare, nil
	}

	return nil, utils.NewModelOutputError(result.Raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back off to a rune boundary so the snippet stays valid UTF-8.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}

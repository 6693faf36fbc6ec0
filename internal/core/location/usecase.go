package location

import (
	"context"
	"fmt"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

type UseCase struct {
	locationRepo     ports.LocationRepository
	subscriptionRepo ports.SubscriptionRepository
	logger           ports.Logger
}

type UseCaseDependencies struct {
	LocationRepo     ports.LocationRepository
	SubscriptionRepo ports.SubscriptionRepository
	Logger           ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.LocationRepo == nil {
		return nil, errors.NewValidationError("location repository is required")
	}
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		locationRepo:     deps.LocationRepo,
		subscriptionRepo: deps.SubscriptionRepo,
		logger:           deps.Logger,
	}, nil
}

func (uc *UseCase) Create(ctx context.Context, params CreateLocationParams) (*Location, error) {
	params.Normalize()
	if err := params.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid location: " + err.Error())
	}

	data := &ports.LocationData{
		Name:      params.Name,
		City:      params.City,
		Country:   params.Country,
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		CreatedBy: params.CreatedBy,
	}
	if err := uc.locationRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}

	uc.logger.Info("Location created",
		ports.F("location_id", data.ID),
		ports.F("city", data.City),
		ports.F("created_by", data.CreatedBy))
	return FromData(data), nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*Location, error) {
	data, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find location %d: %w", id, err)
	}
	return FromData(data), nil
}

func (uc *UseCase) List(ctx context.Context) ([]*Location, error) {
	rows, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	locations := make([]*Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, FromData(row))
	}
	return locations, nil
}

// Delete removes a location and, by cascade, its subscriptions, readings and alerts.
// Only the user who created the location may delete it.
func (uc *UseCase) Delete(ctx context.Context, userID, id uint) error {
	loc, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if loc.CreatedBy != userID {
		return errors.NewForbiddenError("only the creator can delete a location")
	}
	if err := uc.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete location %d: %w", id, err)
	}
	uc.logger.Info("Location deleted", ports.F("location_id", id), ports.F("user_id", userID))
	return nil
}

// Subscribe links the user to the location. Subscribing as default clears the user's previous default.
func (uc *UseCase) Subscribe(ctx context.Context, userID, locationID uint, makeDefault bool) (*Subscription, error) {
	loc, err := uc.Get(ctx, locationID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.subscriptionRepo.Find(ctx, userID, locationID)
	if err == nil && existing != nil {
		return nil, errors.NewAlreadyExistsError("already subscribed to this location")
	}
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("check subscription: %w", err)
	}

	// The first subscription becomes the default so the user receives alert emails.
	if !makeDefault {
		if _, err := uc.subscriptionRepo.FindDefaultForUser(ctx, userID); errors.IsNotFoundError(err) {
			makeDefault = true
		}
	}

	data := &ports.SubscriptionData{UserID: userID, LocationID: locationID}
	if err := uc.subscriptionRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	if makeDefault {
		if err := uc.subscriptionRepo.SetDefault(ctx, userID, locationID); err != nil {
			return nil, fmt.Errorf("set default location: %w", err)
		}
		data.IsDefault = true
	}

	uc.logger.Info("User subscribed to location",
		ports.F("user_id", userID),
		ports.F("location_id", locationID),
		ports.F("default", data.IsDefault))

	sub := subscriptionFromData(data)
	sub.Location = loc
	return sub, nil
}

func (uc *UseCase) Unsubscribe(ctx context.Context, userID, locationID uint) error {
	if _, err := uc.subscriptionRepo.Find(ctx, userID, locationID); err != nil {
		return fmt.Errorf("find subscription: %w", err)
	}
	if err := uc.subscriptionRepo.Delete(ctx, userID, locationID); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	uc.logger.Info("User unsubscribed from location", ports.F("user_id", userID), ports.F("location_id", locationID))
	return nil
}

// SetDefault makes locationID the user's only default location.
func (uc *UseCase) SetDefault(ctx context.Context, userID, locationID uint) error {
	if _, err := uc.subscriptionRepo.Find(ctx, userID, locationID); err != nil {
		return fmt.Errorf("find subscription: %w", err)
	}
	if err := uc.subscriptionRepo.SetDefault(ctx, userID, locationID); err != nil {
		return fmt.Errorf("set default location: %w", err)
	}
	return nil
}

func (uc *UseCase) ListSubscriptions(ctx context.Context, userID uint) ([]*Subscription, error) {
	rows, err := uc.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	subs := make([]*Subscription, 0, len(rows))
	for _, row := range rows {
		sub := subscriptionFromData(row)
		loc, err := uc.locationRepo.FindByID(ctx, row.LocationID)
		if err != nil {
			uc.logger.Warn("Subscription refers to missing location",
				ports.F("subscription_id", row.ID),
				ports.F("location_id", row.LocationID),
				ports.F("error", err))
		} else {
			sub.Location = FromData(loc)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

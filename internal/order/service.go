package order

import (
	"context"
	"log"
	"time"

	"github.com/mmcloughlin/geohash"

	"github.com/dishoutapp/dishout/internal/leads"
	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/phone"
)

// leadAreaPrecision keeps the reported area coarse (a few km), enough for
// analytics without pinpointing the user.
const leadAreaPrecision = 5

// Tracker reports completed leads.
type Tracker interface {
	Track(ctx context.Context, lead leads.Lead) error
}

// Service turns a confirmed pending order into a WhatsApp deep link and
// reports the lead in the background.
type Service struct {
	composer Composer
	plan     phone.Plan
	tracker  Tracker
	now      func() time.Time
}

func NewService(plan phone.Plan, tracker Tracker) *Service {
	return &Service{
		composer: NewComposer(plan),
		plan:     plan,
		tracker:  tracker,
		now:      time.Now,
	}
}

func (s *Service) Composer() Composer {
	return s.composer
}

// Confirm builds the deep link for a chosen provider and fires the lead
// report. Tracking failures are logged, never surfaced, and never block the
// link from opening.
func (s *Service) Confirm(o PendingOrder, dishName, provider, imageURL, userEmail string, loc *location.Coordinate) string {
	link := s.composer.DeepLink(o, dishName, provider, imageURL)

	lead := leads.Lead{
		DishName:        dishName,
		RestaurantName:  o.RestaurantTitle,
		RestaurantPhone: phone.Normalize(o.Phone, s.plan),
		UserEmail:       userEmail,
		Timestamp:       s.now().UTC().Format(time.RFC3339),
		DishImageURL:    imageURL,
	}
	if loc != nil {
		lead.Area = geohash.EncodeWithPrecision(loc.Latitude, loc.Longitude, leadAreaPrecision)
	}

	if s.tracker != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.tracker.Track(ctx, lead); err != nil {
				log.Printf("[ORDER] Lead tracking failed: %v", err)
			}
		}()
	}

	return link
}

// Package people manages person records and their nested gift wish-lists.
//
// Mutating operations take the person that the ownership gate already
// fetched and authorized; the service works on that document and writes it
// back whole. Concurrent mutations of the same person resolve as
// last-write-wins on the document, which the storage layer guarantees by
// serializing per-document writes.
package people

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage"
)

// Service implements person and gift operations on top of the stores.
type Service struct {
	people storage.PersonStore
	users  storage.UserStore
	now    func() time.Time
}

// New creates a people service.
func New(people storage.PersonStore, users storage.UserStore) *Service {
	return &Service{people: people, users: users, now: time.Now}
}

// Create validates and persists a new person. The owner is always the
// authenticated caller; it is never taken from the request body.
func (s *Service) Create(ctx context.Context, ownerID string, params *api.PersonParams) (*api.Person, error) {
	if err := api.ValidateNewPerson(params); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	person := &api.Person{
		ID:        api.NewID(),
		Name:      *params.Name,
		BirthDate: *params.BirthDate,
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPersonParams(person, params)

	if err := s.people.CreatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	return person, nil
}

// List returns every person the user owns or is shared on.
func (s *Service) List(ctx context.Context, userID string) ([]*api.Person, error) {
	out, err := s.people.ListPeopleFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return out, nil
}

// Detail resolves a person's owner and shared-with references to full user
// records for the detail view. References to users that no longer resolve
// are left out rather than failing the request.
func (s *Service) Detail(ctx context.Context, person *api.Person) (api.PersonDetail, error) {
	detail := api.PersonDetail{Person: person, SharedUsers: []*api.User{}}

	owner, err := s.users.GetUser(ctx, person.Owner)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return detail, fmt.Errorf("resolving owner: %w", err)
	}
	detail.OwnerUser = owner

	for _, id := range person.SharedWith {
		u, err := s.users.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return detail, fmt.Errorf("resolving shared user: %w", err)
		}
		detail.SharedUsers = append(detail.SharedUsers, u)
	}
	return detail, nil
}

// Replace overwrites a person with the provided representation. Identity,
// ownership, and creation time survive the replacement; every other field
// takes the new value, with omitted optional fields reset.
func (s *Service) Replace(ctx context.Context, person *api.Person, params *api.PersonParams) (*api.Person, error) {
	if err := api.ValidateNewPerson(params); err != nil {
		return nil, err
	}

	replaced := &api.Person{
		ID:        person.ID,
		Name:      *params.Name,
		BirthDate: *params.BirthDate,
		Owner:     person.Owner,
		CreatedAt: person.CreatedAt,
		UpdatedAt: s.now().UTC(),
	}
	applyPersonParams(replaced, params)

	if err := s.people.UpdatePerson(ctx, replaced); err != nil {
		return nil, fmt.Errorf("replacing person: %w", err)
	}
	return replaced, nil
}

// Patch applies a partial update. Omitted fields are left unchanged, so an
// empty-equivalent body leaves the persisted state as it was.
func (s *Service) Patch(ctx context.Context, person *api.Person, params *api.PersonParams) (*api.Person, error) {
	if params.Empty() {
		return person, nil
	}
	if err := api.ValidatePersonPatch(params); err != nil {
		return nil, err
	}

	if params.Name != nil {
		person.Name = *params.Name
	}
	if params.BirthDate != nil {
		person.BirthDate = *params.BirthDate
	}
	if params.ImageURL != nil {
		person.ImageURL = *params.ImageURL
	}
	if params.SharedWith != nil {
		person.SharedWith = *params.SharedWith
	}
	if params.Gifts != nil {
		person.Gifts = buildGifts(*params.Gifts)
	}
	person.UpdatedAt = s.now().UTC()

	if err := s.people.UpdatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("patching person: %w", err)
	}
	return person, nil
}

// Delete removes a person and returns the deleted record. Only the owner
// reaches this point; the route is gated by auth.OwnerOnly.
func (s *Service) Delete(ctx context.Context, person *api.Person) (*api.Person, error) {
	if err := s.people.DeletePerson(ctx, person.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewPersonNotFoundError(person.ID)
		}
		return nil, fmt.Errorf("deleting person: %w", err)
	}
	return person, nil
}

// AppendGift validates a gift and appends it to the person's wish-list.
// The gift id is assigned here; price defaults when omitted.
func (s *Service) AppendGift(ctx context.Context, person *api.Person, params *api.GiftParams) (*api.Gift, error) {
	if err := api.ValidateNewGift(params); err != nil {
		return nil, err
	}

	gift := buildGift(params)
	person.Gifts = append(person.Gifts, gift)
	person.UpdatedAt = s.now().UTC()

	if err := s.people.UpdatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("appending gift: %w", err)
	}
	return &person.Gifts[len(person.Gifts)-1], nil
}

// PatchGift updates a gift in place by id within the person's wish-list.
func (s *Service) PatchGift(ctx context.Context, person *api.Person, giftID string, params *api.GiftParams) (*api.Gift, error) {
	if err := api.ValidateGiftPatch(params); err != nil {
		return nil, err
	}

	gift := findGift(person, giftID)
	if gift == nil {
		return nil, api.NewGiftNotFoundError(giftID)
	}

	if params.Name != nil {
		gift.Name = *params.Name
	}
	if params.Price != nil {
		gift.Price = *params.Price
	}
	if params.ImageUrl != nil {
		gift.ImageUrl = *params.ImageUrl
	}
	if params.Store != nil {
		if params.Store.Name != nil {
			gift.Store.Name = *params.Store.Name
		}
		if params.Store.ProductURL != nil {
			gift.Store.ProductURL = *params.Store.ProductURL
		}
	}
	person.UpdatedAt = s.now().UTC()

	if err := s.people.UpdatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("patching gift: %w", err)
	}
	return gift, nil
}

// RemoveGift removes a gift by id and returns the removed entry.
func (s *Service) RemoveGift(ctx context.Context, person *api.Person, giftID string) (*api.Gift, error) {
	for i := range person.Gifts {
		if person.Gifts[i].ID != giftID {
			continue
		}
		removed := person.Gifts[i]
		person.Gifts = append(person.Gifts[:i], person.Gifts[i+1:]...)
		person.UpdatedAt = s.now().UTC()

		if err := s.people.UpdatePerson(ctx, person); err != nil {
			return nil, fmt.Errorf("removing gift: %w", err)
		}
		return &removed, nil
	}
	return nil, api.NewGiftNotFoundError(giftID)
}

// applyPersonParams copies the optional fields of a validated create or
// replace payload onto the person.
func applyPersonParams(person *api.Person, params *api.PersonParams) {
	if params.ImageURL != nil {
		person.ImageURL = *params.ImageURL
	}
	if params.SharedWith != nil {
		person.SharedWith = *params.SharedWith
	} else {
		person.SharedWith = []string{}
	}
	if params.Gifts != nil {
		person.Gifts = buildGifts(*params.Gifts)
	} else {
		person.Gifts = []api.Gift{}
	}
}

func buildGifts(params []api.GiftParams) []api.Gift {
	gifts := make([]api.Gift, 0, len(params))
	for i := range params {
		gifts = append(gifts, buildGift(&params[i]))
	}
	return gifts
}

// buildGift materializes a validated gift payload, assigning the id and
// defaulting the price.
func buildGift(params *api.GiftParams) api.Gift {
	gift := api.Gift{
		ID:    api.NewID(),
		Name:  *params.Name,
		Price: api.DefaultGiftPrice,
	}
	if params.Price != nil {
		gift.Price = *params.Price
	}
	if params.ImageUrl != nil {
		gift.ImageUrl = *params.ImageUrl
	}
	if params.Store != nil {
		if params.Store.Name != nil {
			gift.Store.Name = *params.Store.Name
		}
		if params.Store.ProductURL != nil {
			gift.Store.ProductURL = *params.Store.ProductURL
		}
	}
	return gift
}

func findGift(person *api.Person, giftID string) *api.Gift {
	for i := range person.Gifts {
		if person.Gifts[i].ID == giftID {
			return &person.Gifts[i]
		}
	}
	return nil
}

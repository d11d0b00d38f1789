package people

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage/memory"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

var birth = time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)

func createParams() *api.PersonParams {
	return &api.PersonParams{Name: strptr("Grace"), BirthDate: &birth}
}

func newService() (*Service, *memory.Store) {
	store := memory.New()
	return New(store, store), store
}

func TestCreateAssignsOwner(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()
	owner := api.NewID()

	person, err := svc.Create(ctx, owner, createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if person.Owner != owner {
		t.Errorf("owner = %q, want the caller %q", person.Owner, owner)
	}
	if !api.ValidateID(person.ID) {
		t.Errorf("id = %q, want a generated id", person.ID)
	}
	if person.SharedWith == nil || person.Gifts == nil {
		t.Error("optional collections should default to empty, not nil")
	}
	if person.CreatedAt.IsZero() || !person.CreatedAt.Equal(person.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", person.CreatedAt, person.UpdatedAt)
	}

	stored, err := store.GetPerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if stored.Name != "Grace" {
		t.Errorf("persisted name = %q", stored.Name)
	}
}

// The owner comes from the session, never from the payload.
func TestCreateIgnoresListedOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()
	caller := api.NewID()

	params := createParams()
	params.SharedWith = &[]string{api.NewID()}
	person, err := svc.Create(ctx, caller, params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if person.Owner != caller {
		t.Errorf("owner = %q, want %q", person.Owner, caller)
	}
	if len(person.SharedWith) != 1 {
		t.Errorf("sharedWith = %v", person.SharedWith)
	}
}

func TestCreateWithNestedGifts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	params := createParams()
	params.Gifts = &[]api.GiftParams{
		{Name: strptr("Bike"), Price: intptr(15000)},
		{Name: strptr("Book")},
	}
	person, err := svc.Create(ctx, api.NewID(), params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(person.Gifts) != 2 {
		t.Fatalf("len(gifts) = %d, want 2", len(person.Gifts))
	}
	if person.Gifts[0].Price != 15000 {
		t.Errorf("price = %d, want 15000", person.Gifts[0].Price)
	}
	if person.Gifts[1].Price != api.DefaultGiftPrice {
		t.Errorf("defaulted price = %d, want %d", person.Gifts[1].Price, api.DefaultGiftPrice)
	}
	if person.Gifts[0].ID == "" || person.Gifts[0].ID == person.Gifts[1].ID {
		t.Error("gift ids not assigned uniquely")
	}
}

func TestReplaceResetsOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()
	owner := api.NewID()

	params := createParams()
	params.ImageURL = strptr("https://example.com/grace.png")
	params.SharedWith = &[]string{api.NewID()}
	params.Gifts = &[]api.GiftParams{{Name: strptr("Bike")}}
	person, err := svc.Create(ctx, owner, params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	created := person.CreatedAt

	replaced, err := svc.Replace(ctx, person, &api.PersonParams{
		Name:      strptr("Hopper"),
		BirthDate: &birth,
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if replaced.ID != person.ID || replaced.Owner != owner {
		t.Error("replace must not change identity or ownership")
	}
	if !replaced.CreatedAt.Equal(created) {
		t.Error("replace must keep the creation time")
	}
	if replaced.Name != "Hopper" {
		t.Errorf("name = %q", replaced.Name)
	}
	if replaced.ImageURL != "" || len(replaced.SharedWith) != 0 || len(replaced.Gifts) != 0 {
		t.Errorf("omitted fields survived the replace: %+v", replaced)
	}
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	patched, err := svc.Patch(ctx, person, &api.PersonParams{Name: strptr("Hopper")})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if patched.Name != "Hopper" {
		t.Errorf("name = %q", patched.Name)
	}
	if !patched.BirthDate.Equal(birth) {
		t.Error("patch touched an omitted field")
	}

	stored, _ := store.GetPerson(ctx, person.ID)
	if stored.Name != "Hopper" {
		t.Error("patch not persisted")
	}
}

func TestPatchEmptyIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, _ := store.GetPerson(ctx, person.ID)

	if _, err := svc.Patch(ctx, person, &api.PersonParams{}); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	after, _ := store.GetPerson(ctx, person.ID)
	if !after.UpdatedAt.Equal(before.UpdatedAt) || after.Name != before.Name {
		t.Error("empty patch changed the persisted state")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.Delete(ctx, person)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != person.ID {
		t.Errorf("deleted id = %q", deleted.ID)
	}
	if _, err := store.GetPerson(ctx, person.ID); err == nil {
		t.Error("person still in the store")
	}
}

func TestAppendGift(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	gift, err := svc.AppendGift(ctx, person, &api.GiftParams{Name: strptr("Bike"), Price: intptr(15000)})
	if err != nil {
		t.Fatalf("AppendGift: %v", err)
	}
	if gift.Name != "Bike" || gift.Price != 15000 {
		t.Errorf("gift = %+v", gift)
	}
	if !api.ValidateID(gift.ID) {
		t.Errorf("gift id = %q", gift.ID)
	}

	stored, _ := store.GetPerson(ctx, person.ID)
	if len(stored.Gifts) != 1 || stored.Gifts[0].ID != gift.ID {
		t.Errorf("persisted gifts = %+v", stored.Gifts)
	}
}

func TestAppendGiftDefaultsPrice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	gift, err := svc.AppendGift(ctx, person, &api.GiftParams{Name: strptr("Book")})
	if err != nil {
		t.Fatalf("AppendGift: %v", err)
	}
	if gift.Price != api.DefaultGiftPrice {
		t.Errorf("price = %d, want %d", gift.Price, api.DefaultGiftPrice)
	}
}

func TestPatchGift(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	gift, err := svc.AppendGift(ctx, person, &api.GiftParams{Name: strptr("Bike")})
	if err != nil {
		t.Fatalf("AppendGift: %v", err)
	}

	patched, err := svc.PatchGift(ctx, person, gift.ID, &api.GiftParams{
		Price: intptr(20000),
		Store: &api.StoreParams{Name: strptr("Bikes R Us")},
	})
	if err != nil {
		t.Fatalf("PatchGift: %v", err)
	}
	if patched.Price != 20000 || patched.Store.Name != "Bikes R Us" {
		t.Errorf("patched = %+v", patched)
	}
	if patched.Name != "Bike" {
		t.Error("patch touched the omitted name")
	}

	stored, _ := store.GetPerson(ctx, person.ID)
	if stored.Gifts[0].Price != 20000 {
		t.Error("gift patch not persisted")
	}
}

func TestGiftNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	missing := api.NewID()
	for name, op := range map[string]func() error{
		"patch": func() error {
			_, err := svc.PatchGift(ctx, person, missing, &api.GiftParams{Price: intptr(2000)})
			return err
		},
		"remove": func() error {
			_, err := svc.RemoveGift(ctx, person, missing)
			return err
		},
	} {
		err := op()
		var apiErr *api.APIError
		if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeNotFound {
			t.Fatalf("%s = %v, want a not-found error", name, err)
		}
		if apiErr.Description != "We could not find a gift with id: "+missing {
			t.Errorf("%s description = %q", name, apiErr.Description)
		}
	}
}

func TestRemoveGift(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	person, err := svc.Create(ctx, api.NewID(), createParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := svc.AppendGift(ctx, person, &api.GiftParams{Name: strptr("Bike")})
	if err != nil {
		t.Fatalf("AppendGift: %v", err)
	}
	firstID := first.ID
	second, err := svc.AppendGift(ctx, person, &api.GiftParams{Name: strptr("Book")})
	if err != nil {
		t.Fatalf("AppendGift: %v", err)
	}
	secondID := second.ID

	removed, err := svc.RemoveGift(ctx, person, firstID)
	if err != nil {
		t.Fatalf("RemoveGift: %v", err)
	}
	if removed.ID != firstID || removed.Name != "Bike" {
		t.Errorf("removed = %+v", removed)
	}

	stored, _ := store.GetPerson(ctx, person.ID)
	if len(stored.Gifts) != 1 || stored.Gifts[0].ID != secondID {
		t.Errorf("remaining gifts = %+v", stored.Gifts)
	}
}

func TestDetailResolvesUsers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := New(store, store)

	owner := &api.User{ID: api.NewID(), Email: "o@example.com", FirstName: "O", LastName: "Wner"}
	shared := &api.User{ID: api.NewID(), Email: "s@example.com", FirstName: "S", LastName: "Hared"}
	for _, u := range []*api.User{owner, shared} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	params := createParams()
	params.SharedWith = &[]string{shared.ID, api.NewID()} // one dangling reference
	person, err := svc.Create(ctx, owner.ID, params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	detail, err := svc.Detail(ctx, person)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.OwnerUser == nil || detail.OwnerUser.ID != owner.ID {
		t.Errorf("owner = %+v", detail.OwnerUser)
	}
	// The dangling reference is dropped, not fatal.
	if len(detail.SharedUsers) != 1 || detail.SharedUsers[0].ID != shared.ID {
		t.Errorf("shared users = %+v", detail.SharedUsers)
	}
}

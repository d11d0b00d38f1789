package api

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash of the
// credential and is never serialized.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// UserAttributes is the public representation of a User.
type UserAttributes struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *User) ResourceType() string { return "users" }
func (u *User) ResourceID() string   { return u.ID }

// PublicView returns the user's attributes without the identifier or the
// password hash.
func (u *User) PublicView() any {
	return UserAttributes{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// GiftStore describes where a gift can be bought.
type GiftStore struct {
	Name       string `json:"name,omitempty"`
	ProductURL string `json:"productURL,omitempty"`
}

// Gift is a wish-list entry. Gifts exist only nested under a Person.
type Gift struct {
	ID       string
	Name     string
	Price    int
	ImageUrl string
	Store    GiftStore
}

// GiftAttributes is the public representation of a Gift.
type GiftAttributes struct {
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	ImageUrl string    `json:"imageUrl,omitempty"`
	Store    GiftStore `json:"store"`
}

func (g *Gift) ResourceType() string { return "gifts" }
func (g *Gift) ResourceID() string   { return g.ID }

func (g *Gift) PublicView() any {
	return GiftAttributes{
		Name:     g.Name,
		Price:    g.Price,
		ImageUrl: g.ImageUrl,
		Store:    g.Store,
	}
}

// GiftView is a gift as it appears embedded in a person's attributes. Unlike
// GiftAttributes it carries the gift's own id, so clients can address
// individual gifts for patching and removal.
type GiftView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	ImageUrl string    `json:"imageUrl,omitempty"`
	Store    GiftStore `json:"store"`
}

// Person is a tracked individual with a wish-list. Owner references the
// creating user; SharedWith lists users granted read/write access.
type Person struct {
	ID         string
	Name       string
	BirthDate  time.Time
	Owner      string
	SharedWith []string
	Gifts      []Gift
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PersonAttributes is the public representation of a Person. Owner and
// SharedWith hold user ids in the default view; detail responses substitute
// fully resolved user resources (see PersonDetail).
type PersonAttributes struct {
	Name       string    `json:"name"`
	BirthDate  time.Time `json:"birthDate"`
	Owner      any       `json:"owner"`
	SharedWith any       `json:"sharedWith"`
	ImageURL   string    `json:"imageURL,omitempty"`
	// Gifts is nil for summary views and a []GiftView otherwise, so a person
	// with an empty wish-list still serializes "gifts": [].
	Gifts     any       `json:"gifts,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Person) ResourceType() string { return "people" }
func (p *Person) ResourceID() string   { return p.ID }

func (p *Person) PublicView() any {
	return p.attributes(true)
}

// attributes builds the attribute set, optionally including the gift list.
func (p *Person) attributes(withGifts bool) PersonAttributes {
	shared := p.SharedWith
	if shared == nil {
		shared = []string{}
	}
	attrs := PersonAttributes{
		Name:       p.Name,
		BirthDate:  p.BirthDate,
		Owner:      p.Owner,
		SharedWith: shared,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if withGifts {
		gifts := make([]GiftView, 0, len(p.Gifts))
		for _, g := range p.Gifts {
			gifts = append(gifts, GiftView{
				ID:       g.ID,
				Name:     g.Name,
				Price:    g.Price,
				ImageUrl: g.ImageUrl,
				Store:    g.Store,
			})
		}
		attrs.Gifts = gifts
	}
	return attrs
}

// HasGift reports whether the person's wish-list contains a gift with the
// given id.
func (p *Person) HasGift(giftID string) bool {
	for _, g := range p.Gifts {
		if g.ID == giftID {
			return true
		}
	}
	return false
}

// PersonSummary is a Person serialized without its gift list, used by
// collection endpoints.
type PersonSummary struct {
	*Person
}

func (p PersonSummary) PublicView() any {
	return p.attributes(false)
}

// PersonDetail is a Person serialized with its owner and shared users
// resolved to full user resources.
type PersonDetail struct {
	*Person
	OwnerUser   *User
	SharedUsers []*User
}

func (p PersonDetail) PublicView() any {
	attrs := p.attributes(true)
	if p.OwnerUser != nil {
		attrs.Owner = newResource(p.OwnerUser)
	}
	shared := make([]Resource, 0, len(p.SharedUsers))
	for _, u := range p.SharedUsers {
		shared = append(shared, newResource(u))
	}
	attrs.SharedWith = shared
	return attrs
}

// TokenGrant is the response payload for a successful login. It has no
// identifier of its own, so the serialized resource omits the id field.
type TokenGrant struct {
	AccessToken string `json:"accessToken"`
}

func (t *TokenGrant) ResourceType() string { return "tokens" }
func (t *TokenGrant) ResourceID() string   { return "" }
func (t *TokenGrant) PublicView() any      { return *t }

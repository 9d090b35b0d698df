package trending

// KeywordImage maps a keyword substring to a card image. The table is
// ordered; the first keyword contained in the lowercased term wins.
type KeywordImage struct {
	Keyword string `yaml:"keyword"`
	Image   string `yaml:"image"`
}

// Policy is the configurable part of the trending store: the seed entries,
// the keyword-to-image table and the fallback image. The defaults below are
// tuned for the Gulf market the app launched in; ports should swap the
// policy, not patch the store.
type Policy struct {
	Seeds         []Entry        `yaml:"seeds"`
	KeywordImages []KeywordImage `yaml:"keyword_images"`
	FallbackImage string         `yaml:"fallback_image"`
}

func DefaultPolicy() Policy {
	return Policy{
		Seeds: []Entry{
			{ID: "seed-shawarma", Name: "Shawarma", Query: "Find top rated Shawarma near me", Image: "https://images.unsplash.com/photo-1561651823-34feb02250e4?w=640", Popularity: 95},
			{ID: "seed-biryani", Name: "Chicken Biryani", Query: "Find top rated Chicken Biryani near me", Image: "https://images.unsplash.com/photo-1589302168068-964664d93dc0?w=640", Popularity: 88},
			{ID: "seed-karak", Name: "Karak Chai", Query: "Find top rated Karak Chai near me", Image: "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=640", Popularity: 82},
			{ID: "seed-burger", Name: "Smash Burger", Query: "Find top rated Smash Burger near me", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=640", Popularity: 77},
			{ID: "seed-sushi", Name: "Salmon Sushi", Query: "Find top rated Salmon Sushi near me", Image: "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=640", Popularity: 71},
			{ID: "seed-knafeh", Name: "Knafeh", Query: "Find top rated Knafeh near me", Image: "https://images.unsplash.com/photo-1632843149214-9bd9bae5d59a?w=640", Popularity: 66},
		},
		KeywordImages: []KeywordImage{
			{Keyword: "shawarma", Image: "https://images.unsplash.com/photo-1561651823-34feb02250e4?w=640"},
			{Keyword: "biryani", Image: "https://images.unsplash.com/photo-1589302168068-964664d93dc0?w=640"},
			{Keyword: "chai", Image: "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=640"},
			{Keyword: "burger", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=640"},
			{Keyword: "sushi", Image: "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=640"},
			{Keyword: "pizza", Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=640"},
			{Keyword: "pasta", Image: "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?w=640"},
			{Keyword: "kebab", Image: "https://images.unsplash.com/photo-1603360946369-dc9bb6258143?w=640"},
			{Keyword: "curry", Image: "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=640"},
			{Keyword: "salad", Image: "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=640"},
		},
		FallbackImage: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=640",
	}
}

package rest

// catalogParams is the wire form of the catalog query string. List-valued
// parameters arrive comma-separated in a single value. The page and limit
// parameters are absent on purpose: they are parsed leniently outside the
// schema decode so a malformed value falls back instead of failing.
type catalogParams struct {
	Search string `schema:"search"`

	MinAbv    float64 `schema:"minAbv"`
	MaxAbv    float64 `schema:"maxAbv"`
	MinIbu    float64 `schema:"minIbu"`
	MaxIbu    float64 `schema:"maxIbu"`
	MinRating float64 `schema:"minRating"`

	Styles    string `schema:"styles"`
	Breweries string `schema:"breweries"`
	Shops     string `schema:"shops"`

	Stock string `schema:"stock"`
	Set   string `schema:"set"`

	Sort string `schema:"sort"`
}

// tokenRequest is the admin key exchange payload.
type tokenRequest struct {
	AdminKey string `json:"admin_key"`
}

// healthResponse is the liveness payload.
type healthResponse struct {
	Status string `json:"status"`
}

package domain

// Service is a consulting service offered by the company.
// Price is empty for services quoted on request.
type Service struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Features    []string `json:"features" yaml:"features"`
	Price       string   `json:"price" yaml:"price"`
}

// Industry is a market vertical the company serves.
type Industry struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Solutions   []string `json:"solutions" yaml:"solutions"`
	CaseStudies []string `json:"caseStudies" yaml:"case_studies"`
}

// Company holds the contact and brand details shown across the site.
type Company struct {
	Name     string   `yaml:"name"`
	Short    string   `yaml:"short_name"`
	Tagline  string   `yaml:"tagline"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Address  Address  `yaml:"address"`
	Social   Social   `yaml:"social"`
	Location Location `yaml:"location"`
}

type Address struct {
	Street  string `yaml:"street"`
	City    string `yaml:"city"`
	State   string `yaml:"state"`
	Zip     string `yaml:"zip"`
	Country string `yaml:"country"`
}

// Line returns the address on a single line.
func (a Address) Line() string {
	return a.Street + ", " + a.City + ", " + a.State + " " + a.Zip + ", " + a.Country
}

type Social struct {
	LinkedIn string `yaml:"linkedin"`
	Twitter  string `yaml:"twitter"`
	Facebook string `yaml:"facebook"`
}

type Location struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// Achievement is a headline figure such as "250+ Clients Served".
type Achievement struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
}

type TeamMember struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Bio   string `yaml:"bio"`
	Image string `yaml:"image"`
}

// Milestone is an entry on the company timeline.
type Milestone struct {
	Year        string `yaml:"year"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

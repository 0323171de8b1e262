package domain

// Deal is one travel package in the catalog.
type Deal struct {
	Name        string `yaml:"name" json:"name"`
	Tier        string `yaml:"tier" json:"tier"`
	Destination string `yaml:"destination" json:"destination"`
	Price       int    `yaml:"price" json:"price"`
	Inclusions  string `yaml:"inclusions" json:"inclusions"`
}

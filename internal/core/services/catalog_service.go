package services

import (
	"github.com/appfrabric/roilux/internal/core/domain"
)

// Category is one product line of the catalog
type Category struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ProductCount int    `json:"productCount"`
}

// Product is a catalog entry with free-form specifications
type Product struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Specifications map[string]string `json:"specifications"`
}

// CategoryProducts is the detail view of one category
type CategoryProducts struct {
	Title    string     `json:"title"`
	Products []*Product `json:"products"`
}

// CompanyContact holds public contact details
type CompanyContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CompanyInfo is the public company profile
type CompanyInfo struct {
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	Established    string         `json:"established"`
	Capacity       string         `json:"capacity"`
	Certifications []string       `json:"certifications"`
	Contact        CompanyContact `json:"contact"`
}

// SampleProcess describes how product samples are requested
type SampleProcess struct {
	Message string   `json:"message"`
	Process []string `json:"process"`
}

// CatalogService serves the read-only product catalog and company profile
type CatalogService struct {
	categories []*Category
	products   map[string]*CategoryProducts
	company    *CompanyInfo
	samples    *SampleProcess
}

// NewCatalogService creates a catalog service over the built-in catalog
func NewCatalogService() *CatalogService {
	return &CatalogService{
		categories: defaultCategories,
		products:   defaultProducts,
		company:    defaultCompany,
		samples:    defaultSampleProcess,
	}
}

// Categories lists every product line
func (s *CatalogService) Categories() []*Category {
	return s.categories
}

// Products returns the products of one category
func (s *CatalogService) Products(category string) (*CategoryProducts, error) {
	products, ok := s.products[category]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return products, nil
}

// CompanyInfo returns the company profile
func (s *CatalogService) CompanyInfo() *CompanyInfo {
	return s.company
}

// SampleProcess returns the sample request steps
func (s *CatalogService) SampleProcess() *SampleProcess {
	return s.samples
}

var defaultCategories = []*Category{
	{ID: "plywood", Title: "Plywood", Description: "Premium, marine, and structural plywood", ProductCount: 3},
	{ID: "melamine", Title: "Prefinished Melamine", Description: "Various colors with custom options", ProductCount: 2},
	{ID: "melamine-plywood", Title: "Prefinished Melamine Plywood", Description: "High-quality melamine-faced plywood", ProductCount: 2},
	{ID: "veneer", Title: "Wood Veneer", Description: "Different thicknesses and wood types", ProductCount: 4},
	{ID: "logs", Title: "Raw Wood Logs", Description: "Sustainably sourced raw logs", ProductCount: 1},
}

// Only plywood and melamine have published product sheets so far.
var defaultProducts = map[string]*CategoryProducts{
	"plywood": {
		Title: "Plywood",
		Products: []*Product{
			{
				ID:          "premium-plywood",
				Title:       "Premium Plywood",
				Description: "High-grade plywood for furniture and construction",
				Specifications: map[string]string{
					"Thickness":  "1mm - 30mm",
					"Sizes":      "Standard and custom",
					"Wood Types": "Okoume, Acajou, Ayous, Sapele",
				},
			},
			{
				ID:          "marine-plywood",
				Title:       "Marine Plywood",
				Description: "Water-resistant plywood for marine applications",
				Specifications: map[string]string{
					"Thickness":        "6mm - 25mm",
					"Water Resistance": "High",
					"Applications":     "Boats, outdoor furniture",
				},
			},
			{
				ID:          "structural-plywood",
				Title:       "Structural Plywood",
				Description: "Strong plywood for construction use",
				Specifications: map[string]string{
					"Thickness":    "9mm - 30mm",
					"Strength":     "High load-bearing capacity",
					"Applications": "Construction, flooring",
				},
			},
		},
	},
	"melamine": {
		Title: "Prefinished Melamine",
		Products: []*Product{
			{
				ID:          "white-melamine",
				Title:       "White Melamine",
				Description: "Classic white finish",
				Specifications: map[string]string{
					"Finish":        "Smooth matte",
					"Custom Colors": "Available",
				},
			},
			{
				ID:          "wood-grain-melamine",
				Title:       "Wood Grain Melamine",
				Description: "Natural wood appearance",
				Specifications: map[string]string{
					"Patterns": "Multiple wood grains",
					"Texture":  "Embossed",
				},
			},
		},
	},
}

var defaultCompany = &CompanyInfo{
	Name:        "Tropical Wood, a division of Roilux",
	Location:    "Cameroon",
	Established: "2010",
	Capacity:    "50+ containers per month",
	Certifications: []string{
		"FSC Certified",
		"ISO 9001:2015",
		"PEFC Certified",
	},
	Contact: CompanyContact{
		Email:   "info@tropicalwood.com",
		Phone:   "+237 XXX XXX XXX",
		Address: "Industrial Zone, Douala, Cameroon",
	},
}

var defaultSampleProcess = &SampleProcess{
	Message: "Sample request endpoint",
	Process: []string{
		"Fill out the sample request form",
		"Specify products and quantities",
		"Provide shipping information",
		"Receive confirmation within 24 hours",
		"Samples shipped within 3-5 business days",
	},
}

// Package catalog holds the adoptable pet listing and its filters. The
// listing is a fixed dataset; requests reference pets by name only, so the
// catalog stays read-only.
package catalog

import "fmt"

// Pet is one adoptable animal.
type Pet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Breed       string `json:"breed"`
	Fee         int    `json:"fee"`
	HDBApproved bool   `json:"isHDBApproved"`
	Description string `json:"description"`
}

// Fee slider bounds, in dollars.
const (
	MinFee = 50
	MaxFee = 350
)

// hdbApprovedBreeds is the subset of the shelter's dog breeds cleared for
// HDB flats. Cats are always approved.
var hdbApprovedBreeds = map[string]struct{}{
	"Poodle (Toy)":                  {},
	"Shih Tzu":                      {},
	"Chihuahua":                     {},
	"Maltese":                       {},
	"Pomeranian":                    {},
	"Cavalier King Charles Spaniel": {},
	"Miniature Schnauzer":           {},
	"Dachshund":                     {},
	"Jack Russell Terrier":          {},
	"Boston Terrier":                {},
	"Papillon":                      {},
}

// HDBApprovedBreed reports whether a dog breed is cleared for HDB flats.
func HDBApprovedBreed(breed string) bool {
	_, ok := hdbApprovedBreeds[breed]
	return ok
}

func describe(p Pet) string {
	if p.Type == "cat" {
		return fmt.Sprintf("%s is a healthy, vaccinated cat ready for a loving home. Great with families and individuals.", p.Name)
	}
	if p.HDBApproved {
		return fmt.Sprintf("%s is calm, trained, and suitable for HDB living. Fully vaccinated and microchipped.", p.Name)
	}
	return fmt.Sprintf("%s is energetic and requires a private or condo home with space. Great with active families.", p.Name)
}

// FeeRange is the two-ended fee slider. Moving one end past the other drags
// the other end along rather than crossing it.
type FeeRange struct {
	Min int
	Max int
}

// DefaultFeeRange covers the whole slider.
func DefaultFeeRange() FeeRange {
	return FeeRange{Min: MinFee, Max: MaxFee}
}

// SetMin moves the lower end; the upper end follows if overtaken.
func (f FeeRange) SetMin(v int) FeeRange {
	f.Min = v
	if f.Max < v {
		f.Max = v
	}
	return f
}

// SetMax moves the upper end; the lower end follows if overtaken.
func (f FeeRange) SetMax(v int) FeeRange {
	f.Max = v
	if f.Min > v {
		f.Min = v
	}
	return f
}

// Contains reports whether a fee falls inside the range, ends inclusive.
func (f FeeRange) Contains(fee int) bool {
	return fee >= f.Min && fee <= f.Max
}

// Filter selects pets from the listing. Zero values mean "no constraint";
// HDBOnly exempts cats, matching the listing page.
type Filter struct {
	Type    string
	HDBOnly bool
	Fees    FeeRange
}

// Apply returns the pets matching the filter, listing order preserved.
func (f Filter) Apply(pets []Pet) []Pet {
	out := make([]Pet, 0, len(pets))
	for _, p := range pets {
		if f.Type != "" && f.Type != "all" && p.Type != f.Type {
			continue
		}
		if f.HDBOnly && p.Type == "dog" && !p.HDBApproved {
			continue
		}
		if !f.Fees.Contains(p.Fee) {
			continue
		}
		out = append(out, p)
	}
	return out
}

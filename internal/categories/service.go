package categories

import "github.com/mywallet-dev/mywallet/internal/model"

// Service provides in-memory lookup over a category list.
type Service struct {
	categories []model.Category
	byID       map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byID := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Service{categories: cats, byID: byID}
}

// WithDefaults creates a Service over the system chart plus user categories.
// User categories reusing a system ID are ignored.
func WithDefaults(user []model.Category) *Service {
	all := append(Defaults(), UserDefined(user)...)
	return NewService(all)
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by ID.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all categories of the given type.
func (s *Service) ByType(t model.CategoryType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// UserDefined returns the non-system categories.
func (s *Service) UserDefined() []model.Category {
	return UserDefined(s.categories)
}

package models

// FilterKey enumerates the fields a paged profile search can match on.
type FilterKey string

const (
	FilterName       FilterKey = "name"
	FilterTechnology FilterKey = "technology"
	FilterBio        FilterKey = "bio"
	FilterEmail      FilterKey = "email"
	FilterPhone      FilterKey = "phone"
	FilterHeadline   FilterKey = "headline"
	FilterCompany    FilterKey = "company"
	FilterSchool     FilterKey = "school"
	FilterProject    FilterKey = "project"
	FilterSkill      FilterKey = "skill"
)

// FilterKeys lists every supported filter key in display order.
var FilterKeys = []FilterKey{
	FilterName,
	FilterTechnology,
	FilterBio,
	FilterEmail,
	FilterPhone,
	FilterHeadline,
	FilterCompany,
	FilterSchool,
	FilterProject,
	FilterSkill,
}

// FilterSet maps filter keys to their values. Empty values mean "not filtered".
type FilterSet map[FilterKey]string

// Clone returns an independent copy of the filter set.
func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Compact returns a copy holding only the non-empty entries.
func (f FilterSet) Compact() FilterSet {
	out := make(FilterSet, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// AllowedPageSizes are the page sizes the profile list view offers.
var AllowedPageSizes = []int{10, 20, 30}

// ValidPageSize reports whether size is one of the allowed page sizes.
func ValidPageSize(size int) bool {
	for _, s := range AllowedPageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// PageRequest addresses one page of a paged collection. PageNumber is
// 1-indexed.
type PageRequest struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// ProfilePage is one page of a filtered profile search. LastPage and
// TotalResults are server-computed and never derived locally.
type ProfilePage struct {
	Profiles     []*Profile `json:"profiles"`
	LastPage     int        `json:"lastPage"`
	TotalResults int        `json:"totalResults"`
}

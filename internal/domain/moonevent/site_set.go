package moonevent

// SiteSet holds unique GameSites.
type SiteSet map[GameSite]struct{}

func NewSiteSet(sites ...GameSite) SiteSet {
	set := make(SiteSet, len(sites))
	for _, s := range sites {
		set.Add(s)
	}
	return set
}

// Add inserts s and reports whether it was new.
func (s SiteSet) Add(site GameSite) bool {
	if _, ok := s[site]; ok {
		return false
	}
	s[site] = struct{}{}
	return true
}

func (s SiteSet) Len() int {
	return len(s)
}

func (s SiteSet) Slice() []GameSite {
	out := make([]GameSite, 0, len(s))
	for site := range s {
		out = append(out, site)
	}
	return out
}

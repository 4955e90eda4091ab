package routes

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Page identifies a top-level portal page.
type Page string

const (
	PageHome             Page = "home"
	PageScheduling       Page = "scheduling"
	PageSpecialistSearch Page = "specialist-search"
	PageResults          Page = "results"
	PageAdminLogin       Page = "admin-login"
	PageScheduleConfig   Page = "schedule-config"
	PageMoreOffers       Page = "more-offers"
	PageMoreCoupons      Page = "more-coupons"
	PageCouponDetail     Page = "coupon-detail"
	PageAdmin            Page = "admin"
	PageCouponVerifier   Page = "coupon-verifier"
	PageRClinicSoftware  Page = "rclinic-software"
	PageReferrals        Page = "referrals"
	PageReferralPortal   Page = "referral-portal"
	PageMedicalAgenda    Page = "medical-agenda"
)

const pageRoutePrefix = "#/"

// pageTable maps a fragment path to its page. Matching is exact.
var pageTable = map[string]Page{
	"/agendamiento":           PageScheduling,
	"/busqueda-especialistas": PageSpecialistSearch,
	"/resultados":             PageResults,
	"/configuracion":          PageAdminLogin,
	"/configuracion-horarios": PageScheduleConfig,
	"/mas-ofertas":            PageMoreOffers,
	"/mas-cupones":            PageMoreCoupons,
	"/cupon-detalle":          PageCouponDetail,
	"/admin":                  PageAdmin,
	"/verificador-cupones":    PageCouponVerifier,
	"/rclinic-software":       PageRClinicSoftware,
	"/referidos":              PageReferrals,
	"/portal-referidos":       PageReferralPortal,
	"/agenda-medica":          PageMedicalAgenda,
}

// SearchParams are the specialist search filters carried in the fragment.
type SearchParams struct {
	Ciudad       string `json:"ciudad,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Especialidad string `json:"especialidad,omitempty"`
}

// Resolution is the outcome of routing one fragment.
type Resolution struct {
	Page      Page          `json:"page"`
	Path      string        `json:"path"`
	Query     url.Values    `json:"query"`
	ScrollTop bool          `json:"scrollTop"`
	CouponID  *int64        `json:"couponId,omitempty"`
	Search    *SearchParams `json:"search,omitempty"`
}

type RouteEntry struct {
	Path string `json:"path"`
	Page Page   `json:"page"`
}

// ResolveFragment maps a URL fragment such as "#/cupon-detalle?id=3" to a
// page. Unknown paths, the empty fragment and in-page anchors like
// "#nosotros" all resolve to the home page. Only page routes ("#/...")
// scroll to the top.
func ResolveFragment(fragment string) Resolution {
	res := Resolution{
		Page:      PageHome,
		ScrollTop: strings.HasPrefix(fragment, pageRoutePrefix),
	}

	raw := strings.TrimPrefix(fragment, "#")
	path, rawQuery, _ := strings.Cut(raw, "?")
	res.Path = path

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Keep whatever pairs parsed before the malformed one.
		query = partialQuery(rawQuery)
	}
	res.Query = query

	if page, ok := pageTable[path]; ok {
		res.Page = page
	}

	switch res.Page {
	case PageCouponDetail:
		if id, err := strconv.ParseInt(query.Get("id"), 10, 64); err == nil {
			res.CouponID = &id
		}
	case PageSpecialistSearch:
		res.Search = &SearchParams{
			Ciudad:       query.Get("ciudad"),
			Sector:       query.Get("sector"),
			Especialidad: query.Get("especialidad"),
		}
	}
	return res
}

func partialQuery(raw string) url.Values {
	out := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		k, v, _ := strings.Cut(pair, "=")
		key, err1 := url.QueryUnescape(k)
		val, err2 := url.QueryUnescape(v)
		if err1 != nil || err2 != nil || key == "" {
			continue
		}
		out.Add(key, val)
	}
	return out
}

// RouteTable lists the registered page routes sorted by path.
func RouteTable() []RouteEntry {
	out := make([]RouteEntry, 0, len(pageTable))
	for path, page := range pageTable {
		out = append(out, RouteEntry{Path: path, Page: page})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

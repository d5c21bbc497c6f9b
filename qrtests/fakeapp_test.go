package qrtests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	fakeLoginEmail    = "demo@novatok.app"
	fakeLoginPassword = "demopassword"
	fakeFreeLimit     = 5
	fakeProLimit      = 50
)

// fakeApp is an in-memory implementation of the QR Hub API that behaves the way a conforming
// deployment does. Its fields can be changed before the server starts to simulate deviations.
type fakeApp struct {
	stripeConfigured bool
	enforceLimits    bool
	rejectAuth       bool

	// serveAnalytics routes GET /qr/{slug}/analytics to analytics. Otherwise every GET under
	// /qr/{slug} is a slug lookup, as in the deployed app.
	serveAnalytics bool

	scanCountDrops           bool
	nonIdempotentUpdate      bool
	keepDeleted              bool
	limitMessage             string
	limitFlagMissing         bool
	checkoutClaimsConfigured bool
	reversePlans             bool

	updates int

	users  map[string]*fakeUser // by email
	tokens map[string]*fakeUser
	qrs    []*fakeQR
	events map[string][]servicedef.QREvent // by QR code ID
	lock   sync.Mutex
}

type fakeUser struct {
	id       string
	email    string
	password string
	plan     string
}

type fakeQR struct {
	servicedef.QRCode
	owner string
}

func newFakeApp() *fakeApp {
	a := &fakeApp{
		enforceLimits: true,
		users:         make(map[string]*fakeUser),
		tokens:        make(map[string]*fakeUser),
		events:        make(map[string][]servicedef.QREvent),
	}
	a.users[fakeLoginEmail] = &fakeUser{
		id:       uuid.NewString(),
		email:    fakeLoginEmail,
		password: fakeLoginPassword,
		plan:     servicedef.PlanPro,
	}
	return a
}

// Handler returns the API, rooted at /api.
func (a *fakeApp) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", a.getStatus)
	mux.HandleFunc("GET /plans", a.getPlans)
	mux.HandleFunc("POST /auth/signup", a.signup)
	mux.HandleFunc("POST /auth/login", a.login)
	mux.HandleFunc("GET /auth/session", a.getSession)
	mux.HandleFunc("POST /auth/logout", a.logout)
	mux.HandleFunc("GET /user/plan", a.getUserPlan)
	mux.HandleFunc("POST /qr", a.createQR)
	mux.HandleFunc("GET /qr", a.listQRs)
	mux.HandleFunc("GET /qr/{slug}", a.getQRBySlug)
	if a.serveAnalytics {
		mux.HandleFunc("GET /qr/{slug}/analytics", a.getAnalytics)
	} else {
		mux.HandleFunc("GET /qr/{slug}/{rest...}", a.getQRBySlug)
	}
	mux.HandleFunc("POST /qr/{slug}/event", a.trackEvent)
	mux.HandleFunc("PUT /qr/{id}", a.updateQR)
	mux.HandleFunc("DELETE /qr/{id}", a.deleteQR)
	mux.HandleFunc("GET /nft/{id}", a.getNFT)
	mux.HandleFunc("GET /marketplace/{id}", a.getListing)
	mux.HandleFunc("POST /stripe/checkout", a.checkout)

	api := http.StripPrefix("/api", mux)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			writeJSON(w, http.StatusOK, map[string]interface{}{})
			return
		}
		a.lock.Lock()
		defer a.lock.Unlock()
		api.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, servicedef.ErrorResponse{Error: message})
}

func (a *fakeApp) currentUser(r *http.Request) *fakeUser {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return nil
	}
	return a.tokens[auth[len(prefix):]]
}

func limitFor(plan string) int {
	if plan == servicedef.PlanFree {
		return fakeFreeLimit
	}
	return fakeProLimit
}

func planLimits(plan string) servicedef.PlanLimits {
	switch plan {
	case servicedef.PlanFree:
		return servicedef.PlanLimits{
			MaxQRCodes:             ldvalue.NewOptionalInt(fakeFreeLimit),
			MaxScansPerMonth:       ldvalue.NewOptionalInt(1000),
			AnalyticsRetentionDays: 7,
		}
	case servicedef.PlanPro:
		return servicedef.PlanLimits{
			MaxQRCodes:             ldvalue.NewOptionalInt(fakeProLimit),
			MaxScansPerMonth:       ldvalue.NewOptionalInt(50000),
			CustomDomains:          true,
			AnalyticsRetentionDays: 90,
			PrioritySupport:        true,
			APIAccess:              true,
		}
	default:
		return servicedef.PlanLimits{
			MaxQRCodes:             ldvalue.NewOptionalInt(-1),
			CustomDomains:          true,
			AnalyticsRetentionDays: 365,
			PrioritySupport:        true,
			APIAccess:              true,
			WhiteLabel:             true,
		}
	}
}

func (a *fakeApp) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, servicedef.StatusResponse{
		Supabase: servicedef.IntegrationStatus{Configured: true},
		Stripe:   servicedef.IntegrationStatus{Configured: a.stripeConfigured},
		Web3: servicedef.Web3Status{
			WalletConnectConfigured: true,
			ChainID:                 ldvalue.Int(137),
		},
	})
}

func (a *fakeApp) getPlans(w http.ResponseWriter, r *http.Request) {
	plans := []servicedef.Plan{
		{ID: servicedef.PlanFree, Name: "Free", Price: ldvalue.Int(0), Interval: "month",
			Features: []string{"5 QR codes"}, Limits: planLimits(servicedef.PlanFree)},
		{ID: servicedef.PlanPro, Name: "Pro", Price: ldvalue.Int(19), Interval: "month",
			Features: []string{"50 QR codes"}, Limits: planLimits(servicedef.PlanPro), Popular: true},
		{ID: servicedef.PlanBusiness, Name: "Business", Price: ldvalue.Int(99), Interval: "month",
			Features: []string{"Unlimited QR codes"}, Limits: planLimits(servicedef.PlanBusiness)},
	}
	if a.reversePlans {
		for i, j := 0, len(plans)-1; i < j; i, j = i+1, j-1 {
			plans[i], plans[j] = plans[j], plans[i]
		}
	}
	writeJSON(w, http.StatusOK, servicedef.PlansResponse{Plans: plans})
}

func (a *fakeApp) startSession(w http.ResponseWriter, u *fakeUser) {
	token := uuid.NewString()
	a.tokens[token] = u
	writeJSON(w, http.StatusOK, servicedef.AuthResponse{
		User:    &servicedef.User{ID: u.id, Email: u.email},
		Session: &servicedef.Session{AccessToken: token},
	})
}

func (a *fakeApp) signup(w http.ResponseWriter, r *http.Request) {
	var creds servicedef.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if a.rejectAuth {
		writeError(w, http.StatusBadRequest, "Signups are disabled")
		return
	}
	if a.users[creds.Email] != nil {
		writeError(w, http.StatusBadRequest, "User already registered")
		return
	}
	u := &fakeUser{id: uuid.NewString(), email: creds.Email, password: creds.Password, plan: servicedef.PlanFree}
	a.users[u.email] = u
	a.startSession(w, u)
}

func (a *fakeApp) login(w http.ResponseWriter, r *http.Request) {
	var creds servicedef.Credentials
	_ = json.NewDecoder(r.Body).Decode(&creds)
	u := a.users[creds.Email]
	if a.rejectAuth || u == nil || u.password != creds.Password {
		writeError(w, http.StatusBadRequest, "Invalid login credentials")
		return
	}
	a.startSession(w, u)
}

func (a *fakeApp) getSession(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if u == nil {
		writeJSON(w, http.StatusOK, servicedef.SessionResponse{})
		return
	}
	writeJSON(w, http.StatusOK, servicedef.SessionResponse{User: &servicedef.User{ID: u.id, Email: u.email}})
}

func (a *fakeApp) logout(w http.ResponseWriter, r *http.Request) {
	if current := a.currentUser(r); current != nil {
		for token, u := range a.tokens {
			if u == current {
				delete(a.tokens, token)
			}
		}
	}
	writeJSON(w, http.StatusOK, servicedef.SuccessResponse{Success: true})
}

func (a *fakeApp) getUserPlan(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, servicedef.UserPlanResponse{Plan: &servicedef.UserPlan{
		UserID:        u.id,
		Plan:          u.plan,
		EffectivePlan: u.plan,
		Limits:        planLimits(u.plan),
		IsActive:      true,
	}})
}

func validateDestination(qrType string, config ldvalue.Value) string {
	has := func(key string) bool {
		v := config.GetByKey(key)
		switch v.Type() {
		case ldvalue.NullType:
			return false
		case ldvalue.BoolType:
			return v.BoolValue()
		case ldvalue.NumberType:
			return v.Float64Value() != 0
		case ldvalue.StringType:
			return v.StringValue() != ""
		default:
			return true
		}
	}
	switch qrType {
	case servicedef.QRTypeFiat:
		if !has("amount") || !has("currency") || !has("productName") {
			return "Fiat payments require amount, currency, and product name"
		}
	case servicedef.QRTypeCrypto:
		if !has("walletAddress") || !has("currency") {
			return "Crypto payments require wallet address and currency"
		}
	case servicedef.QRTypeNova:
		if !has("walletAddress") {
			return "NOVA payments require receiving wallet address"
		}
	case servicedef.QRTypeNFTMint:
		if !has("nftName") {
			return "NFT mint requires NFT name"
		}
	case servicedef.QRTypeNFTListing:
		if !has("listingId") || !has("price") {
			return "NFT listing requires listing ID and price"
		}
	}
	return ""
}

func (a *fakeApp) ownedBy(u *fakeUser) []*fakeQR {
	var ret []*fakeQR
	for _, q := range a.qrs {
		if q.owner == u.id {
			ret = append(ret, q)
		}
	}
	return ret
}

func (a *fakeApp) createQR(w http.ResponseWriter, r *http.Request) {
	var params servicedef.CreateQRParams
	_ = json.NewDecoder(r.Body).Decode(&params)
	if params.Name == "" || params.Type == "" {
		writeError(w, http.StatusBadRequest, "Name and type are required")
		return
	}
	if msg := validateDestination(params.Type, params.DestinationConfig); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	u := a.currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if limit := limitFor(u.plan); a.enforceLimits && len(a.ownedBy(u)) >= limit {
		message := fmt.Sprintf("You have reached the maximum of %d QR codes on the %s plan", limit, u.plan)
		if a.limitMessage != "" {
			message = a.limitMessage
		}
		writeJSON(w, http.StatusForbidden, servicedef.LimitError{
			Error:        message,
			LimitReached: !a.limitFlagMissing,
			CurrentCount: len(a.ownedBy(u)),
			Limit:        limit,
			Plan:         u.plan,
		})
		return
	}
	q := &fakeQR{
		QRCode: servicedef.QRCode{
			ID:                uuid.NewString(),
			Slug:              uuid.NewString()[:8],
			Name:              params.Name,
			Type:              params.Type,
			DestinationConfig: params.DestinationConfig,
			IsActive:          true,
			UserID:            u.id,
		},
		owner: u.id,
	}
	if a.scanCountDrops {
		q.ScanCount = 10
	}
	a.qrs = append(a.qrs, q)
	writeJSON(w, http.StatusCreated, servicedef.QRCreated{QR: &q.QRCode, QRURL: "https://qr.example/q/" + q.Slug})
}

func (a *fakeApp) listQRs(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list := servicedef.QRList{QRCodes: []servicedef.QRCode{}}
	for _, q := range a.ownedBy(u) {
		list.QRCodes = append(list.QRCodes, q.QRCode)
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *fakeApp) findBySlug(slug string) *fakeQR {
	for _, q := range a.qrs {
		if q.Slug == slug {
			return q
		}
	}
	return nil
}

func (a *fakeApp) findOwned(r *http.Request, id string) (*fakeQR, int) {
	u := a.currentUser(r)
	if u == nil {
		return nil, http.StatusUnauthorized
	}
	for _, q := range a.qrs {
		if q.ID == id && q.owner == u.id {
			return q, 0
		}
	}
	return nil, http.StatusNotFound
}

func (a *fakeApp) getQRBySlug(w http.ResponseWriter, r *http.Request) {
	q := a.findBySlug(r.PathValue("slug"))
	if q == nil || !q.IsActive {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}
	if a.scanCountDrops {
		q.ScanCount = 0
	} else {
		q.ScanCount++
	}
	writeJSON(w, http.StatusOK, servicedef.QRResponse{QR: &q.QRCode})
}

func (a *fakeApp) getAnalytics(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	q := a.findBySlug(r.PathValue("slug"))
	if q == nil || q.owner != u.id {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}
	events := append([]servicedef.QREvent{}, a.events[q.ID]...)
	writeJSON(w, http.StatusOK, servicedef.AnalyticsResponse{
		QR:     &q.QRCode,
		Events: events,
		Stats:  servicedef.AnalyticsStats{TotalScans: q.ScanCount, RecentEvents: len(events)},
	})
}

func (a *fakeApp) trackEvent(w http.ResponseWriter, r *http.Request) {
	var params servicedef.EventParams
	_ = json.NewDecoder(r.Body).Decode(&params)
	if q := a.findBySlug(r.PathValue("slug")); q != nil {
		eventType := params.EventType
		if eventType == "" {
			eventType = servicedef.EventScan
		}
		a.events[q.ID] = append(a.events[q.ID], servicedef.QREvent{
			ID:        uuid.NewString(),
			QRCodeID:  q.ID,
			EventType: eventType,
			Country:   params.Country,
			Metadata:  params.Metadata,
		})
	}
	writeJSON(w, http.StatusOK, servicedef.SuccessResponse{Success: true})
}

func (a *fakeApp) updateQR(w http.ResponseWriter, r *http.Request) {
	q, status := a.findOwned(r, r.PathValue("id"))
	if q == nil {
		writeError(w, status, http.StatusText(status))
		return
	}
	var params servicedef.UpdateQRParams
	_ = json.NewDecoder(r.Body).Decode(&params)
	if params.Name != nil {
		q.Name = *params.Name
	}
	if params.IsActive != nil {
		q.IsActive = *params.IsActive
	}
	if params.DestinationConfig != nil {
		q.DestinationConfig = *params.DestinationConfig
	}
	if a.nonIdempotentUpdate {
		a.updates++
		q.DestinationConfig = ldvalue.ObjectBuild().Set("revision", ldvalue.Int(a.updates)).Build()
	}
	writeJSON(w, http.StatusOK, servicedef.QRResponse{QR: &q.QRCode})
}

func (a *fakeApp) deleteQR(w http.ResponseWriter, r *http.Request) {
	q, status := a.findOwned(r, r.PathValue("id"))
	if q == nil {
		writeError(w, status, http.StatusText(status))
		return
	}
	if a.keepDeleted {
		writeJSON(w, http.StatusOK, servicedef.SuccessResponse{Success: true})
		return
	}
	for i, other := range a.qrs {
		if other == q {
			a.qrs = append(a.qrs[:i], a.qrs[i+1:]...)
			break
		}
	}
	delete(a.events, q.ID)
	writeJSON(w, http.StatusOK, servicedef.SuccessResponse{Success: true})
}

func (a *fakeApp) getNFT(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, servicedef.NFTResponse{NFT: &servicedef.NFT{
		ID:          id,
		Name:        "NovaTok NFT #" + id,
		Description: "A unique NovaTok collectible",
		Image:       "https://picsum.photos/seed/" + id + "/400/400",
		Contract:    "0x0000000000000000000000000000000000000000",
		ChainID:     ldvalue.Int(137),
	}})
}

func (a *fakeApp) getListing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, servicedef.ListingResponse{Listing: &servicedef.Listing{
		ID:          id,
		NFTID:       id,
		Name:        "NovaTok NFT #" + id,
		Description: "Available on NovaTok Marketplace",
		Image:       "https://picsum.photos/seed/listing" + id + "/400/400",
		Price:       ldvalue.String("0.01"),
		Currency:    "ETH",
		Seller:      "0x0000...0000",
		Contract:    "0x0000000000000000000000000000000000000000",
		ChainID:     ldvalue.Int(137),
	}})
}

func (a *fakeApp) checkout(w http.ResponseWriter, r *http.Request) {
	if !a.stripeConfigured {
		writeJSON(w, http.StatusBadRequest, servicedef.CheckoutResponse{
			Error:      "Stripe not configured",
			Configured: ldvalue.Bool(a.checkoutClaimsConfigured),
		})
		return
	}
	id := "cs_test_" + uuid.NewString()[:12]
	writeJSON(w, http.StatusOK, servicedef.CheckoutResponse{
		SessionID: id,
		URL:       "https://checkout.stripe.example/pay/" + id,
	})
}

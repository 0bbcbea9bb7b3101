package domain

// View identifies the active screen of the journal
type View string

const (
	ViewDashboard       View = "dashboard"
	ViewCreate          View = "create"
	ViewTable           View = "view"
	ViewPublicShared    View = "public_shared"
	ViewStudy           View = "study"
	ViewContextLearning View = "context-learning"
)

package config

import "time"

const (
	DefaultTokenValidity = time.Hour * 24
	AuthCookieName       = "auth_token"

	TokenPurposeRegistration = "registration"
	TokenPurposeAdmin        = "admin"
	TokenPurposeSensitive    = "sensitive"
	TokenPurposeGeneral      = "general"

	// DefaultUserRoleName is attached to registrations that do not pick
	// a role, when a role with this name exists.
	DefaultUserRoleName = "user"

	// analytic type ids; only activity monitoring carries a real
	// capacity dimension on servers.
	TypeAnalyticActivityMonitoring int64 = 1
	TypeAnalyticWeaponDetection    int64 = 2
	TypeAnalyticAnimalPopulation   int64 = 3
	TypeAnalyticPpeDetection       int64 = 4
	TypeAnalyticNomorLambung       int64 = 5
	TypeAnalyticCustomerService    int64 = 6

	DefaultPageLimit = 10
	MaxPageLimit     = 100

	StaticRoutePrefix = "/static"
)

// ReportLocation is the fixed zone every chart/report endpoint works
// in, regardless of server timezone.
var ReportLocation = time.FixedZone("Asia/Jakarta", 7*60*60)

// Category lists for the chart endpoints. Order is the column order of
// the assembled parallel arrays.
var (
	ActivityMonitoringCategories = []string{"standing", "sitting", "walking", "idle"}
	WeaponDetectionCategories    = []string{"handgun", "rifle", "knife", "sharp_weapon"}
	AnimalPopulationCategories   = []string{"cattle", "goat", "buffalo"}
	PpeDetectionCategories       = []string{"no_helmet", "no_vest", "no_boots"}
	NomorLambungCategories       = []string{"readable", "unreadable"}
)

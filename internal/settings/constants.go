package settings

// DB config keys and defaults for platform settings.
const (
	// SiteNameKey is the DB config key for the UI site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback UI site name.
	DefaultSiteName = "SalonFlow"
	// ThemeColorKey is the DB config key for the branding base color.
	ThemeColorKey = "THEME_COLOR"
	// DefaultThemeColor is the fallback branding base color.
	DefaultThemeColor = "#7c5cbf"
	// SupportEmailKey is the DB config key for the support contact address.
	SupportEmailKey = "SUPPORT_EMAIL"
	// BookingWindowDaysKey controls how far ahead appointments may be booked.
	BookingWindowDaysKey = "BOOKING_WINDOW_DAYS"
	// DefaultBookingWindowDays is the fallback booking window.
	DefaultBookingWindowDays = 90
)

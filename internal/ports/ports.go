package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherGateway WeatherGateway
	BundleCache    BundleCache

	// Persistence
	PreferencesRepository PreferencesRepository

	// Metrics
	CacheMetrics   CacheMetrics
	StoreMetrics   StoreMetrics
	GatewayMetrics GatewayMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Database       interface{}
	Closers        []func() error
}

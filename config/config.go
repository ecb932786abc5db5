// Package config contains the enviroment configuration of the account store
package config

// DevEnv names the enviroment the server is running in
type DevEnv string

const (
	// Prod is the production enviroment
	Prod DevEnv = "PROD"
	// Dev is the development enviroment
	Dev DevEnv = "DEV"
	// Test is the enviroment used when running tests
	Test DevEnv = "TEST"
)

// GetDevEnv resolves the running enviroment from the loaded configuration,
// falling back to the test enviroment when the value is not recognized
func GetDevEnv(env *Env) DevEnv {
	switch env.DevEnv {
	case string(Prod):
		return Prod
	case string(Dev):
		return Dev
	default:
		return Test
	}
}

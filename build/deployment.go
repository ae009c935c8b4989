package build

// DeploymentType selects between the production and development flavors of
// the binary. It is fixed at compile time by the dev build tag.
type DeploymentType byte

const (
	// Development builds route test logging to stdout.
	Development DeploymentType = iota

	// Production builds log only through a SubLoggerManager.
	Production
)

// String returns the name of the deployment type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

// IsProdBuild reports whether the binary was built without the dev tag.
func IsProdBuild() bool {
	return Deployment == Production
}

// Describe summarizes the compile time build settings for log output.
func Describe() string {
	return "deployment=" + Deployment.String() + " logging=" +
		LoggingType.String() + " level=" + LogLevel
}

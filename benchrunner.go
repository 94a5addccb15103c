/*
Package benchrunner holds application level constants and shared resources
for the benchrunner tool, which automates one update-and-benchmark cycle
against a local NEAR-style test network.
*/
package benchrunner

const (
	// LoadgenProcessName is the process name of the load-generation tool,
	// used when tearing down a previous experiment.
	LoadgenProcessName = "locust"

	// LoadgenPackage is the pip package providing the load-generation tool.
	LoadgenPackage = "locust"

	// FundingKeyEnvVar names the environment variable exposing the
	// validator key file to the benchmark scenario.
	FundingKeyEnvVar = "FUNDING_KEY"
)

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""

package exitcodes

// Exit codes for the diskops report tool
// These codes form the operational contract with CI/CD and operators
const (
	Success       = 0 // Successful execution
	InvalidConfig = 2 // Configuration file invalid or missing
	RuntimeError  = 4 // Runtime error during execution
)

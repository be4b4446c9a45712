// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// Long-running commands such as watch register hooks with OnShutdown and
// then block in Wait or WaitContext until SIGINT, SIGTERM or context
// cancellation.
package shutdown

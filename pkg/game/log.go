package game

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

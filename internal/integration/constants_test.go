package integration_test

const (
	// Seeded by testdata/core_up.sql
	TestUserId = 42

	TestPlayTitle      = "Hamlet"
	TestMainStageName  = "Main Stage"
	TestStudioHallName = "Studio"

	// performance 2 plays in the 2x2 Studio hall, so it sells out fast
	TestStudioPerformanceId = 2
	TestStudioCapacity      = 4
)

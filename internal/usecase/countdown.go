package usecase

// Countdown derives the seconds remaining until the next scheduled refresh
// from an elapsed 1-second tick counter. The result is always in
// [1, periodSeconds] and restarts every periodSeconds ticks. Display only;
// the actual refresh runs on its own timer.
func Countdown(tick, periodSeconds int) int {
	return periodSeconds - tick%periodSeconds
}

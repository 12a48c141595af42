package content

// sentences is the built-in sentence set served by the infallible local
// provider.
var sentences = []string{
	"The quick brown fox jumps over the lazy dog",
	"Practice until the motions become second nature",
	"Reliance on sight is the enemy of speed",
	"Fluidity matters more than raw velocity",
	"Typing speed improves with consistent daily practice",
	"Accuracy first, speed will follow naturally",
	"Keep your eyes on the screen, not the keyboard",
	"Proper finger placement is key to efficient typing",
	"Every expert was once a beginner who kept practicing",
	"Slow and steady wins the typing race",
	"Muscle memory develops through repetition and focus",
	"The home row is your foundation for touch typing",
	"Challenge yourself with new words and patterns",
	"Take breaks to avoid fatigue and maintain accuracy",
	"Celebrate small improvements along the way",
}

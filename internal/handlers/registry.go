package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	MessageHandler *MessageHandler
	JobHandler     *JobHandler
	ProfileHandler *ProfileHandler
	JournalHandler *JournalHandler
}

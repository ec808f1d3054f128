package engine

// User-facing conversation copy. The transport layer renders these verbatim.
const (
	MsgWelcome = "Welcome!\n" +
		"I will send you questions for you to answer and your answers will then be sent to the appropriate team members!\n" +
		"Hold down the microphone to answer."
	MsgCompleted     = "Thank you! All your responses have been recorded. Would you like to submit your application?"
	MsgAllAnswered   = "All questions have been answered. Thank you!"
	MsgUseButtons    = "Please use the buttons to answer the question"
	MsgInvalidOption = "Invalid option"
	MsgAudioAck      = "Please wait while we process the audio"
	MsgNoPrevious    = "There is no previous question to answer."
)

package constants

// Stage is the step an analyze request has reached. Logged with every failure.
type Stage string

const (
	StageReceived    Stage = "received"
	StageClassified  Stage = "classified"
	StageExtracted   Stage = "extracted"
	StagePrompted    Stage = "prompted"
	StageModelCalled Stage = "model_called"
	StageValidated   Stage = "validated"
	StageResponded   Stage = "responded"
)

// ParseStatus values for the X-Invoice-Parse response header.
const (
	ParseStatusOK       = "ok"
	ParseStatusDegraded = "degraded"
)

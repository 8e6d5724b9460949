package metrics

// Label names
const (
	LabelMethod      = "method"
	LabelRoute       = "route"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelSubject     = "subject"
	LabelCorrect     = "correct"
	LabelWorld       = "world"
	LabelAchievement = "achievement"
	LabelRarity      = "rarity"
	LabelTrigger     = "trigger"
	LabelStat        = "stat"
	LabelOutcome     = "outcome"
)

// Achievement check triggers
const (
	TriggerAPI   = "api"
	TriggerEvent = "event"
	TriggerSweep = "sweep"
)

// Respec outcomes
const (
	OutcomePerformed = "performed"
	OutcomeNoToken   = "no_token"
)

// unmatchedRoute labels requests chi could not route, keeping 404 scans to one series
const unmatchedRoute = "unmatched"

const LogMsgEventPayloadUndecodable = "Event payload could not be decoded"

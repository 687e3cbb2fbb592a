package connection

// State - этап обработки соединения
type State int

// этапы проходятся строго по порядку; ошибка разбора запроса
// или записи заголовков сразу переводит в Closed
const (
	Start State = iota
	ParsingRequest
	ResolvingType
	WritingHeader
	StreamingBody
	Closed
)

var stateNames = [...]string{
	Start:          "Start",
	ParsingRequest: "ParsingRequest",
	ResolvingType:  "ResolvingType",
	WritingHeader:  "WritingHeader",
	StreamingBody:  "StreamingBody",
	Closed:         "Closed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}

	return stateNames[s]
}

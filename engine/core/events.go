package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * ke := data.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * ke := data.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * me := data.Data.(*MouseEvent)
	 */
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released.
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Mouse moved.
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * se := data.Data.(*SystemEvent)
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// A file was dropped onto the window.
	/* Context usage:
	 * fe := data.Data.(*FileDropEvent)
	 */
	EVENT_CODE_FILE_DROPPED SystemEventCode = 0x09

	// The pick pass classified a click.
	/* Context usage:
	 * pick := data.Data.(int)
	 */
	EVENT_CODE_OBJECT_PICKED SystemEventCode = 0x0A

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   int
	PosY   int
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FileDropEvent struct {
	Name string
	Data []byte
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

// EventBus dispatches events synchronously on the goroutine that fires them.
// Listeners run in registration order until one reports the event as handled.
type EventBus struct {
	registered map[SystemEventCode][]FnOnEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]FnOnEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code.
 * @param code The event code to listen for.
 * @param onEvent The callback to be invoked when the event code is fired.
 */
func (eb *EventBus) Register(code SystemEventCode, onEvent FnOnEvent) {
	if onEvent == nil {
		return
	}
	eb.registered[code] = append(eb.registered[code], onEvent)
}

// Listeners returns how many callbacks are registered for code.
func (eb *EventBus) Listeners(code SystemEventCode) int {
	return len(eb.registered[code])
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (eb *EventBus) Fire(context EventContext) bool {
	for _, cb := range eb.registered[context.Type] {
		if cb(context) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (eb *EventBus) Shutdown() {
	eb.registered = make(map[SystemEventCode][]FnOnEvent)
}

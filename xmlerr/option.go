package xmlerr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option  { return func(e *Error) { e.Message = msg } }
func WithElement(elem string) Option { return func(e *Error) { e.Element = elem } }
func WithPath(path string) Option    { return func(e *Error) { e.Path = path } }
func WithField(field string) Option  { return func(e *Error) { e.Field = field } }
func WithOperation(op string) Option { return func(e *Error) { e.Operation = op } }
func WithValue(value string) Option  { return func(e *Error) { e.Value = value } }

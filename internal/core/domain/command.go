package domain

// Row is one result tuple, in the column order projected by the query.
type Row []any

// CommandKind identifies what a Command asks the worker to do.
type CommandKind int

const (
	// CommandQuery runs a parameterized SQL statement.
	CommandQuery CommandKind = iota
	// CommandCommit flushes pending writes to the backing file.
	CommandCommit
	// CommandQuit stops the worker and closes the connection.
	CommandQuit
)

// String returns the lower-case name of the kind.
func (k CommandKind) String() string {
	switch k {
	case CommandQuery:
		return "query"
	case CommandCommit:
		return "commit"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a single request for the database worker.
// Each command is consumed exactly once, in submission order.
type Command struct {
	// ID correlates the command with its Response.
	ID   string
	Kind CommandKind
	SQL  string
	Args []any
}

// QueryCommand builds a CommandQuery for the statement and its parameters.
func QueryCommand(sql string, args ...any) Command {
	return Command{Kind: CommandQuery, SQL: sql, Args: args}
}

// CommitCommand builds a CommandCommit.
func CommitCommand() Command {
	return Command{Kind: CommandCommit}
}

// QuitCommand builds a CommandQuit.
func QuitCommand() Command {
	return Command{Kind: CommandQuit}
}

// ResponseKind identifies the payload carried by a Response.
type ResponseKind int

const (
	// ResponseRows carries the rows returned by a query.
	ResponseRows ResponseKind = iota
	// ResponseAck acknowledges a commit or quit.
	ResponseAck
	// ResponseError carries the error a command failed with.
	ResponseError
)

// Response is the worker's answer to exactly one Command.
type Response struct {
	// ID echoes the ID of the Command this answers.
	ID   string
	Kind ResponseKind
	Rows []Row
	Ack  bool
	Err  error
}

// RowsResponse builds a ResponseRows answer.
func RowsResponse(id string, rows []Row) Response {
	return Response{ID: id, Kind: ResponseRows, Rows: rows}
}

// AckResponse builds a ResponseAck answer.
func AckResponse(id string, ack bool) Response {
	return Response{ID: id, Kind: ResponseAck, Ack: ack}
}

// ErrorResponse builds a ResponseError answer.
func ErrorResponse(id string, err error) Response {
	return Response{ID: id, Kind: ResponseError, Err: err}
}

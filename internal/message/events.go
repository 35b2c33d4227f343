package message

// Nomes dos eventos trocados com o cliente. São os mesmos nos dois sentidos
// quando o evento existe nos dois (draw, clearCanvas, chatMessage).
const (
	// Cliente -> servidor
	TypeJoinRoom     = "joinRoom"
	TypeWordSelected = "wordSelected"
	TypeGuess        = "guess"
	TypePauseGame    = "pauseGame"
	TypeResumeGame   = "resumeGame"
	TypeSkipTurn     = "skipTurn"
	TypeResetGame    = "resetGame"

	// Servidor -> cliente
	TypeMessage     = "message"
	TypeIsAdmin     = "isAdmin"
	TypeScoreboard  = "scoreboard"
	TypeTurn        = "turn"
	TypeChooseWord  = "chooseWord"
	TypeTimer       = "timer"
	TypeRoundUpdate = "roundUpdate"
	TypeGameOver    = "gameOver"
	TypeError       = "error"

	// Nos dois sentidos
	TypeDraw        = "draw"
	TypeClearCanvas = "clearCanvas"
	TypeChatMessage = "chatMessage"
)

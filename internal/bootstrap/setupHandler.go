package bootstrap

import (
	httpHandler "wordgame-service/internal/api/http/handler"
	httpUsecase "wordgame-service/internal/api/http/usecase"
	gameHub "wordgame-service/internal/api/ws/hub"
	wsHandler "wordgame-service/internal/api/ws/handler"
	wsUsecase "wordgame-service/internal/api/ws/usecase"
	"wordgame-service/internal/game"
)

func SetupHTTPHandlers(manager *game.Manager) map[string]interface{} {
	createRoomUseCase := httpUsecase.NewCreateRoomUseCase(manager)
	createRoomHandler := httpHandler.NewCreateRoomHandler(createRoomUseCase)

	listRoomsUseCase := httpUsecase.NewListRoomsUseCase(manager)
	listRoomsHandler := httpHandler.NewListRoomsHandler(listRoomsUseCase)

	deleteHostedRoomsUseCase := httpUsecase.NewDeleteHostedRoomsUseCase(manager)
	deleteHostedRoomsHandler := httpHandler.NewDeleteHostedRoomsHandler(deleteHostedRoomsUseCase)

	getRoomUseCase := httpUsecase.NewGetRoomUseCase(manager)
	getRoomHandler := httpHandler.NewGetRoomHandler(getRoomUseCase)

	joinRoomUseCase := httpUsecase.NewJoinRoomUseCase(manager)
	joinRoomHandler := httpHandler.NewJoinRoomHandler(joinRoomUseCase)

	leaveRoomUseCase := httpUsecase.NewLeaveRoomUseCase(manager)
	leaveRoomHandler := httpHandler.NewLeaveRoomHandler(leaveRoomUseCase)

	startGameUseCase := httpUsecase.NewStartGameUseCase(manager)
	startGameHandler := httpHandler.NewStartGameHandler(startGameUseCase)

	submitAnswerUseCase := httpUsecase.NewSubmitAnswerUseCase(manager)
	submitAnswerHandler := httpHandler.NewSubmitAnswerHandler(submitAnswerUseCase)

	passUseCase := httpUsecase.NewPassUseCase(manager)
	passHandler := httpHandler.NewPassHandler(passUseCase)

	typeWordUseCase := httpUsecase.NewTypeWordUseCase(manager)
	typeWordHandler := httpHandler.NewTypeWordHandler(typeWordUseCase)

	attackUseCase := httpUsecase.NewAttackUseCase(manager)
	attackHandler := httpHandler.NewAttackHandler(attackUseCase)

	getBoardUseCase := httpUsecase.NewGetBoardUseCase(manager)
	getBoardHandler := httpHandler.NewGetBoardHandler(getBoardUseCase)

	return map[string]interface{}{
		"create-room":         createRoomHandler,
		"list-rooms":          listRoomsHandler,
		"delete-hosted-rooms": deleteHostedRoomsHandler,
		"get-room":            getRoomHandler,
		"join-room":           joinRoomHandler,
		"leave-room":          leaveRoomHandler,
		"start-game":          startGameHandler,
		"submit-answer":       submitAnswerHandler,
		"pass":                passHandler,
		"type-word":           typeWordHandler,
		"attack":              attackHandler,
		"get-board":           getBoardHandler,
	}
}

func SetupWSHandlers(manager *game.Manager, wsHub *gameHub.Hub) map[string]interface{} {
	roomConnect := wsUsecase.NewRoomConnectUseCase(wsHub, manager)
	roomConnectHandler := wsHandler.NewWebSocketRoomHandler(roomConnect)

	lobbyConnect := wsUsecase.NewLobbyConnectUseCase(wsHub)
	lobbyConnectHandler := wsHandler.NewWebSocketLobbyHandler(lobbyConnect)

	return map[string]interface{}{
		"room-connect":  roomConnectHandler,
		"lobby-connect": lobbyConnectHandler,
	}
}

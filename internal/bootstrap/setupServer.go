package bootstrap

import (
	"wordgame-service/config"
	httpUsecase "wordgame-service/internal/api/http/usecase"
	httpGameHandler "wordgame-service/internal/api/http/handler"
	wsHandler "wordgame-service/internal/api/ws/handler"
	"wordgame-service/internal/game"
	"wordgame-service/internal/handler"
	"wordgame-service/internal/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}, auth fiber.Handler, limiter *handler.RateLimiter) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		IdleTimeout:  config.Server.IdleTimeout,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		AllowOrigins: config.Server.AllowOrigins,
	}

	app := server.NewFiberApp(serverConfig)

	createRoomHandler := httpHandlers["create-room"].(*httpGameHandler.CreateRoomHandler)
	listRoomsHandler := httpHandlers["list-rooms"].(*httpGameHandler.ListRoomsHandler)
	deleteHostedRoomsHandler := httpHandlers["delete-hosted-rooms"].(*httpGameHandler.DeleteHostedRoomsHandler)
	getRoomHandler := httpHandlers["get-room"].(*httpGameHandler.GetRoomHandler)
	joinRoomHandler := httpHandlers["join-room"].(*httpGameHandler.JoinRoomHandler)
	leaveRoomHandler := httpHandlers["leave-room"].(*httpGameHandler.LeaveRoomHandler)
	startGameHandler := httpHandlers["start-game"].(*httpGameHandler.StartGameHandler)
	submitAnswerHandler := httpHandlers["submit-answer"].(*httpGameHandler.SubmitAnswerHandler)
	passHandler := httpHandlers["pass"].(*httpGameHandler.PassHandler)
	typeWordHandler := httpHandlers["type-word"].(*httpGameHandler.TypeWordHandler)
	attackHandler := httpHandlers["attack"].(*httpGameHandler.AttackHandler)
	getBoardHandler := httpHandlers["get-board"].(*httpGameHandler.GetBoardHandler)

	rooms := app.Group("/rooms", auth, limiter.Middleware())
	rooms.Post("/", handler.HandleWithFiber[httpGameHandler.CreateRoomRequest, httpGameHandler.CreateRoomResponse](createRoomHandler))
	rooms.Get("/", handler.HandleWithFiber[httpGameHandler.ListRoomsRequest, httpGameHandler.ListRoomsResponse](listRoomsHandler))
	rooms.Delete("/hosted", handler.HandleWithFiber[httpGameHandler.DeleteHostedRoomsRequest, httpGameHandler.DeleteHostedRoomsResponse](deleteHostedRoomsHandler))
	rooms.Get("/:room_id", handler.HandleWithFiber[httpGameHandler.GetRoomRequest, httpUsecase.RoomView](getRoomHandler))
	rooms.Post("/:room_id/join", handler.HandleWithFiber[httpGameHandler.JoinRoomRequest, httpGameHandler.JoinRoomResponse](joinRoomHandler))
	rooms.Post("/:room_id/leave", handler.HandleWithFiber[httpGameHandler.LeaveRoomRequest, httpGameHandler.LeaveRoomResponse](leaveRoomHandler))
	rooms.Post("/:room_id/start", handler.HandleWithFiber[httpGameHandler.StartGameRequest, httpUsecase.RoomView](startGameHandler))
	rooms.Post("/:room_id/answer", handler.HandleWithFiber[httpGameHandler.SubmitAnswerRequest, httpUsecase.AnswerView](submitAnswerHandler))
	rooms.Post("/:room_id/pass", handler.HandleWithFiber[httpGameHandler.PassRequest, httpUsecase.RoomView](passHandler))
	rooms.Post("/:room_id/type", handler.HandleWithFiber[httpGameHandler.TypeWordRequest, httpUsecase.TypeView](typeWordHandler))
	rooms.Post("/:room_id/attack", handler.HandleWithFiber[httpGameHandler.AttackRequest, httpUsecase.AttackView](attackHandler))
	rooms.Get("/:room_id/board", handler.HandleWithFiber[httpGameHandler.GetBoardRequest, game.BoardSnapshot](getBoardHandler))

	wsRoute := app.Group("/ws", auth, handler.UpgradeOnly())
	roomConnectHandler := wsHandlers["room-connect"].(*wsHandler.WebSocketRoomHandler)
	lobbyConnectHandler := wsHandlers["lobby-connect"].(*wsHandler.WebSocketLobbyHandler)
	wsRoute.Get("/rooms/:room_id", handler.HandleWithFiberWS[wsHandler.WebSocketRoomRequest](roomConnectHandler))
	wsRoute.Get("/lobby/:mode", handler.HandleWithFiberWS[wsHandler.WebSocketLobbyRequest](lobbyConnectHandler))

	return app
}

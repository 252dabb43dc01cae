package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/lost-and-found-api/api"
	"github.com/linesmerrill/lost-and-found-api/api/scheduler"
	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	item := Item{
		LostDB:  databases.NewItemDatabase(a.dbHelper, databases.LostItemsCollection),
		FoundDB: databases.NewItemDatabase(a.dbHelper, databases.FoundItemsCollection),
	}
	search := Search{LostDB: item.LostDB, FoundDB: item.FoundDB}
	contact := Contact{DB: databases.NewContactDatabase(a.dbHelper)}
	chat := Chat{
		ConvDB: databases.NewConversationDatabase(a.dbHelper),
		MsgDB:  databases.NewMessageDatabase(a.dbHelper),
	}
	stream := Stream{MsgDB: chat.MsgDB}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/submitLostItem", api.Middleware(http.HandlerFunc(item.SubmitLostItemHandler))).Methods("POST", "OPTIONS")
	apiCreate.Handle("/submitFoundItem", api.Middleware(http.HandlerFunc(item.SubmitFoundItemHandler))).Methods("POST", "OPTIONS")
	apiCreate.Handle("/getItems", api.Middleware(http.HandlerFunc(item.GetItemsHandler))).Methods("GET", "POST", "OPTIONS")
	apiCreate.Handle("/searchItems", api.Middleware(http.HandlerFunc(search.SearchItemsHandler))).Methods("GET", "POST", "OPTIONS")
	apiCreate.Handle("/submitContactForm", api.Middleware(http.HandlerFunc(contact.SubmitContactFormHandler))).Methods("POST", "OPTIONS")
	apiCreate.Handle("/getItemDetails", api.Middleware(http.HandlerFunc(item.GetItemDetailsHandler))).Methods("GET", "POST", "OPTIONS")
	apiCreate.Handle("/sendMessage", api.Middleware(http.HandlerFunc(chat.SendMessageHandler))).Methods("POST", "OPTIONS")
	apiCreate.Handle("/getMessages", api.Middleware(http.HandlerFunc(chat.GetMessagesHandler))).Methods("GET", "POST", "OPTIONS")
	apiCreate.Handle("/getConversations", api.Middleware(http.HandlerFunc(chat.GetConversationsHandler))).Methods("GET", "OPTIONS")
	apiCreate.Handle("/generate-upload-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST", "OPTIONS")

	// the stream sets its own headers and must not go through the JSON
	// middleware
	apiCreate.Handle("/streamMessages", http.HandlerFunc(stream.StreamMessagesHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("lost-and-found-api has connected to the database")

	a.scheduler = scheduler.NewScheduler(
		databases.NewConversationDatabase(a.dbHelper),
		databases.NewMessageDatabase(a.dbHelper),
	)
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

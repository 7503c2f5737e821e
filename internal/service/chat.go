package service

import (
	"context"
	"log"
	"sync"
	"time"

	"placesbot/internal/bot"
	"placesbot/internal/model"
	"placesbot/internal/monitoring"

	"github.com/google/uuid"
)

// PlaceRepository is everything the chat service needs from the place
// catalog: the responder's queries plus the vocabulary seed.
type PlaceRepository interface {
	bot.PlaceSource
	ListDistinctTypes(ctx context.Context) ([]string, error)
}

// ConversationStore mirrors session history to durable storage
type ConversationStore interface {
	AppendMessage(ctx context.Context, sessionID, userID string, msg model.Message) error
	LoadActiveConversation(ctx context.Context, userID string) (string, []model.Message, error)
}

// session is one conversation: its id, vocabulary snapshot and in-memory
// history. The mutex serializes turns within the session.
type session struct {
	id         string
	userID     string
	mu         sync.Mutex
	vocabulary []string
	history    []model.Message
}

type persistTask struct {
	sessionID string
	userID    string
	msg       model.Message
}

// ChatService runs the classify → query → generate pipeline for each turn
// and owns the per-session state. History writes go through a buffered queue
// drained by a single worker, so persistence never blocks or fails a turn.
type ChatService struct {
	places       PlaceRepository
	store        ConversationStore
	classifier   *bot.Classifier
	responder    *bot.Responder
	defaultTypes []string
	queryTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	persistCh chan persistTask
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewChatService creates the service and starts the persistence worker
func NewChatService(
	places PlaceRepository,
	store ConversationStore,
	classifier *bot.Classifier,
	responder *bot.Responder,
	defaultTypes []string,
	queryTimeout time.Duration,
	persistQueueSize int,
) *ChatService {
	s := &ChatService{
		places:       places,
		store:        store,
		classifier:   classifier,
		responder:    responder,
		defaultTypes: defaultTypes,
		queryTimeout: queryTimeout,
		sessions:     make(map[string]*session),
		persistCh:    make(chan persistTask, persistQueueSize),
	}
	s.wg.Add(1)
	go s.persistWorker()
	return s
}

// Close stops the persistence worker after draining the queue
func (s *ChatService) Close() {
	s.closeOnce.Do(func() {
		close(s.persistCh)
	})
	s.wg.Wait()
}

// Turn processes one user message and returns the assistant reply. It never
// returns an error to the caller: every failure path inside the pipeline
// degrades to a user-facing text response.
func (s *ChatService) Turn(ctx context.Context, req model.ChatRequest) model.ChatResponse {
	sess := s.getOrCreateSession(ctx, req.SessionID, req.UserID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	userMsg := model.Message{
		ID:        uuid.NewString(),
		Text:      req.Text,
		FromUser:  true,
		Timestamp: time.Now(),
	}
	sess.history = append(sess.history, userMsg)
	s.enqueuePersist(sess, userMsg)

	intent := s.classifier.Classify(req.Text, sess.vocabulary)
	text, places := s.responder.Respond(ctx, intent)
	monitoring.TurnsTotal.WithLabelValues(intent.Kind.String()).Inc()

	reply := model.Message{
		ID:        uuid.NewString(),
		Text:      text,
		FromUser:  false,
		Timestamp: time.Now(),
		Places:    places,
	}
	sess.history = append(sess.history, reply)
	s.enqueuePersist(sess, reply)

	return model.ChatResponse{SessionID: sess.id, Reply: reply}
}

// History returns a copy of the ordered message history of a session
func (s *ChatService) History(sessionID string) ([]model.Message, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	history := make([]model.Message, len(sess.history))
	copy(history, sess.history)
	return history, true
}

// getOrCreateSession resolves the session for a turn. A new session restores
// the user's prior conversation (best-effort) and refreshes the place-type
// vocabulary once; both degrade silently.
func (s *ChatService) getOrCreateSession(ctx context.Context, sessionID, userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if sess, ok := s.sessions[sessionID]; ok {
			return sess
		}
	}

	sess := &session{id: sessionID, userID: userID}

	// Reconnecting user without a session id: resume the active conversation
	if sess.id == "" && userID != "" {
		restoredID, history, err := s.loadActiveConversation(ctx, userID)
		if err != nil {
			log.Printf("⚠️  failed to restore conversation for user %s: %v", userID, err)
		} else if restoredID != "" {
			if existing, ok := s.sessions[restoredID]; ok {
				return existing
			}
			sess.id = restoredID
			sess.history = history
		}
	}
	if sess.id == "" {
		sess.id = uuid.NewString()
	}

	sess.vocabulary = s.refreshVocabulary(ctx)
	s.sessions[sess.id] = sess
	return sess
}

// refreshVocabulary seeds the session's place-type set from the catalog,
// falling back to the configured defaults when the query fails or comes back
// empty. The refresh is best-effort and runs once per session.
func (s *ChatService) refreshVocabulary(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	types, err := s.places.ListDistinctTypes(ctx)
	if err != nil || len(types) == 0 {
		if err != nil {
			log.Printf("⚠️  place-type refresh failed, using default vocabulary: %v", err)
		}
		monitoring.VocabularyFallbacksTotal.Inc()
		return s.defaultTypes
	}
	return types
}

func (s *ChatService) loadActiveConversation(ctx context.Context, userID string) (string, []model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.store.LoadActiveConversation(ctx, userID)
}

// enqueuePersist hands a message to the persistence worker without blocking
// the turn; a full queue drops the write.
func (s *ChatService) enqueuePersist(sess *session, msg model.Message) {
	select {
	case s.persistCh <- persistTask{sessionID: sess.id, userID: sess.userID, msg: msg}:
	default:
		log.Printf("⚠️  persistence queue full, dropping message %s", msg.ID)
		monitoring.PersistFailuresTotal.Inc()
	}
}

func (s *ChatService) persistWorker() {
	defer s.wg.Done()
	for task := range s.persistCh {
		ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
		err := s.store.AppendMessage(ctx, task.sessionID, task.userID, task.msg)
		cancel()
		if err != nil {
			log.Printf("⚠️  failed to persist message %s: %v", task.msg.ID, err)
			monitoring.PersistFailuresTotal.Inc()
		}
	}
}

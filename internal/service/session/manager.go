package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/havenlabs/haven/backend/internal/analysis/distortion"
	"github.com/havenlabs/haven/backend/internal/analysis/distress"
	"github.com/havenlabs/haven/backend/internal/analysis/tone"
	"github.com/havenlabs/haven/backend/internal/model/chat"
	"github.com/havenlabs/haven/backend/internal/service/intervention"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
)

// Trend summarizes how distress moved across a conversation.
type Trend string

const (
	TrendDecreasing Trend = "decreasing"
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
)

// Exchange pairs a stored user turn with the companion turn it produced.
type Exchange struct {
	UserMessage      chat.Message `json:"userMessage"`
	CompanionMessage chat.Message `json:"companionMessage"`
	CrisisFlag       bool         `json:"crisisFlag"`
}

const defaultWelcome = "Hi, I'm glad you're here. This is a space where you can talk about whatever is on your mind. How are you feeling today?"

const crisisActionNote = "Escalated to crisis protocol: safety check asked and crisis hotline referral provided."

// Config carries the injectable pieces of the engine pipeline. Nil fields
// fall back to the package defaults.
type Config struct {
	Analyzer   *tone.Analyzer
	Classifier *distress.Classifier
	Detector   *distortion.Detector
	Selector   *intervention.Selector
	Welcome    string
	Now        func() time.Time
}

// Manager owns the in-memory session registry and runs the full
// analyze-classify-respond pipeline for each user turn. The registry map is
// guarded by its own lock; each session carries a second lock so that the
// append-and-maybe-escalate unit of PostMessage is serialized per session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*state

	analyzer   *tone.Analyzer
	classifier *distress.Classifier
	detector   *distortion.Detector
	selector   *intervention.Selector
	welcome    string
	now        func() time.Time
}

type state struct {
	mu      sync.Mutex
	session chat.Session
}

// NewManager bootstraps the in-memory session engine.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		sessions:   make(map[string]*state),
		analyzer:   cfg.Analyzer,
		classifier: cfg.Classifier,
		detector:   cfg.Detector,
		selector:   cfg.Selector,
		welcome:    cfg.Welcome,
		now:        cfg.Now,
	}
	if m.analyzer == nil {
		m.analyzer = tone.NewAnalyzer(nil)
	}
	if m.classifier == nil {
		m.classifier = distress.NewClassifier(distress.Phrases{})
	}
	if m.detector == nil {
		m.detector = distortion.NewDetector(nil)
	}
	if m.selector == nil {
		m.selector = intervention.NewSelector(intervention.Templates{}, "", nil)
	}
	if strings.TrimSpace(m.welcome) == "" {
		m.welcome = defaultWelcome
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}
	return m
}

// StartSession creates a session for the user and seeds it with the
// companion welcome turn.
func (m *Manager) StartSession(_ context.Context, userID string, initialDistress int, metadata map[string]string) (chat.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return chat.Session{}, ErrUserRequired
	}

	now := m.now()
	session := chat.Session{
		ID:                   uuid.NewString(),
		UserID:               userID,
		StartTime:            now,
		Messages:             make([]chat.Message, 0, 16),
		InitialDistressScore: initialDistress,
		Metadata:             copyMetadata(metadata),
	}
	session.Messages = append(session.Messages, chat.Message{
		ID:               uuid.NewString(),
		SessionID:        session.ID,
		Sender:           chat.SenderCompanion,
		Text:             m.welcome,
		Tone:             chat.NeutralTone(),
		DistressScore:    int(distress.Mild),
		InterventionType: chat.InterventionGeneral,
		CreatedAt:        now,
	})

	m.mu.Lock()
	m.sessions[session.ID] = &state{session: session}
	m.mu.Unlock()

	return cloneSession(session), nil
}

// PostMessage runs one user turn through the pipeline, appends the user and
// companion messages in that order, and escalates the crisis flag when the
// turn classifies at crisis level. The whole unit holds the session lock.
func (m *Manager) PostMessage(_ context.Context, sessionID, text string) (Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, ErrEmptyMessage
	}

	st, err := m.lookup(sessionID)
	if err != nil {
		return Exchange{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.Ended() {
		return Exchange{}, ErrSessionEnded
	}

	toneResult := m.analyzer.Analyze(text)
	level := m.classifier.Classify(text, toneResult)

	// Distortion scanning only informs moderate-level CBT replies.
	var distortions []distortion.Tag
	if level == distress.Moderate {
		distortions = m.detector.Detect(tone.Tokens(text))
	}

	reply := m.selector.Respond(level, toneResult, distortions)
	now := m.now()

	userMessage := chat.Message{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Sender:        chat.SenderUser,
		Text:          text,
		Tone:          toneFields(toneResult),
		DistressScore: int(level),
		CreatedAt:     now,
	}
	companionMessage := chat.Message{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		Sender:           chat.SenderCompanion,
		Text:             reply.Text,
		Tone:             chat.NeutralTone(),
		DistressScore:    int(level),
		InterventionType: reply.InterventionType,
		CreatedAt:        now,
	}

	st.session.Messages = append(st.session.Messages, userMessage, companionMessage)

	// The flag is monotonic: the intervention record is written exactly once.
	if level == distress.Crisis && !st.session.CrisisFlag {
		st.session.CrisisFlag = true
		st.session.CrisisIntervention = &chat.CrisisIntervention{
			Triggered:   true,
			Timestamp:   now,
			ActionTaken: crisisActionNote,
		}
		log.Printf("[session] crisis escalation for session=%s", sessionID)
	}

	return Exchange{
		UserMessage:      userMessage,
		CompanionMessage: companionMessage,
		CrisisFlag:       st.session.CrisisFlag,
	}, nil
}

// EndSession closes the session. Ending an already-ended session fails with
// ErrSessionEnded rather than silently rewriting the end time.
func (m *Manager) EndSession(_ context.Context, sessionID string, finalDistress int) (chat.Session, error) {
	st, err := m.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.Ended() {
		return chat.Session{}, ErrSessionEnded
	}

	now := m.now()
	st.session.EndTime = &now
	if finalDistress > 0 {
		st.session.FinalDistressScore = finalDistress
	}

	return cloneSession(st.session), nil
}

// GetSession returns a snapshot of the session and its transcript.
func (m *Manager) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	st, err := m.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return cloneSession(st.session), nil
}

// DistressTrend compares average distress between the two halves of the
// message sequence.
func (m *Manager) DistressTrend(_ context.Context, sessionID string) (Trend, error) {
	st, err := m.lookup(sessionID)
	if err != nil {
		return "", err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return trendOf(st.session.Messages), nil
}

// trendOf splits the sequence at the floor midpoint and sums distress scores
// per half. Both halves divide by half the message count, even when the
// second half holds the extra message and some turns carry no score.
func trendOf(messages []chat.Message) Trend {
	n := len(messages)
	if n < 2 {
		return TrendStable
	}

	half := n / 2
	var first, second float64
	for i, msg := range messages {
		if msg.DistressScore == 0 {
			continue
		}
		if i < half {
			first += float64(msg.DistressScore)
		} else {
			second += float64(msg.DistressScore)
		}
	}

	avgFirst := first / float64(half)
	avgSecond := second / float64(half)
	switch {
	case avgSecond < avgFirst-0.5:
		return TrendDecreasing
	case avgSecond > avgFirst+0.5:
		return TrendIncreasing
	default:
		return TrendStable
	}
}

func (m *Manager) lookup(sessionID string) (*state, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

func toneFields(t tone.Result) chat.EmotionalTone {
	return chat.EmotionalTone{
		Score:            t.Score,
		PrimaryEmotion:   t.Primary,
		SecondaryEmotion: t.Secondary,
	}
}

func cloneSession(s chat.Session) chat.Session {
	copied := s
	copied.Messages = append([]chat.Message(nil), s.Messages...)
	copied.Metadata = copyMetadata(s.Metadata)
	if s.CrisisIntervention != nil {
		ci := *s.CrisisIntervention
		copied.CrisisIntervention = &ci
	}
	if s.EndTime != nil {
		end := *s.EndTime
		copied.EndTime = &end
	}
	return copied
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]string, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return copied
}

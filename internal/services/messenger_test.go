package services

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/jobdesk/notifier/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func newTestMessenger(t *testing.T) (*Messenger, *Notifier) {
	dbContext := newTestDb(t)
	notifier := NewNotifier(repositories.NewNotificationsRepository(dbContext.DB))
	messenger := NewMessenger(repositories.NewMessagesRepository(dbContext.DB), notifier, EventBus.New())
	return messenger, notifier
}

func Test_ConversationID_OrderIndependent(t *testing.T) {
	assert.Equal(t, entities.ConversationID("alice", "bob"), entities.ConversationID("bob", "alice"))
	assert.Equal(t, "alice:bob", entities.ConversationID("bob", "alice"))
}

func Test_SendMessage_EmptyContent_Rejected(t *testing.T) {

	messenger, _ := newTestMessenger(t)

	_, err := messenger.SendMessage(context.Background(), MessageInput{SenderID: "alice", ReceiverID: "bob"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func Test_SendMessage_ToSelf_Rejected(t *testing.T) {

	messenger, _ := newTestMessenger(t)

	_, err := messenger.SendMessage(context.Background(), MessageInput{
		SenderID: "alice", ReceiverID: "alice", Content: "hi me",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func Test_SendMessage_PersistsMessageAndNotifiesReceiver(t *testing.T) {

	messenger, notifier := newTestMessenger(t)
	ctx := context.Background()

	sent, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "hi"})
	assert.NoError(t, err)
	assert.False(t, sent.Read)
	assert.Equal(t, entities.ConversationID("alice", "bob"), sent.ConversationID)

	messages, err := messenger.ListMessages(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)

	notifications, err := notifier.List(ctx, entities.Actor{ID: "bob"}, "bob", repositories.NotificationFilter{})
	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Equal(t, entities.NotificationMessage, notifications[0].Type)
	assert.Equal(t, sent.ID, notifications[0].MessageID)
}

func Test_ListMessages_ChatOrderOldestFirst(t *testing.T) {

	messenger, _ := newTestMessenger(t)
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		_, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: content})
		assert.NoError(t, err)
	}

	messages, err := messenger.ListMessages(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func Test_ListConversations_LatestMessageAndUnreadCountPerConversation(t *testing.T) {

	messenger, _ := newTestMessenger(t)
	ctx := context.Background()

	_, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "hello bob"})
	assert.NoError(t, err)
	_, err = messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "still there?"})
	assert.NoError(t, err)
	_, err = messenger.SendMessage(ctx, MessageInput{SenderID: "carol", ReceiverID: "bob", Content: "hey"})
	assert.NoError(t, err)

	conversations, err := messenger.ListConversations(ctx, "bob")
	assert.NoError(t, err)
	assert.Len(t, conversations, 2)

	// newest conversation first
	assert.Equal(t, "carol", conversations[0].OtherUserID)
	assert.Equal(t, "hey", conversations[0].LastMessage.Content)
	assert.Equal(t, 1, conversations[0].UnreadCount)

	assert.Equal(t, "alice", conversations[1].OtherUserID)
	assert.Equal(t, "still there?", conversations[1].LastMessage.Content)
	assert.Equal(t, 2, conversations[1].UnreadCount)
}

func Test_MarkRead_OnlyReceiverMayMark(t *testing.T) {

	messenger, _ := newTestMessenger(t)
	ctx := context.Background()

	sent, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "hi"})
	assert.NoError(t, err)

	err = messenger.MarkRead(ctx, entities.Actor{ID: "alice"}, sent.ID)
	assert.ErrorIs(t, err, apperror.ErrDenied)

	err = messenger.MarkRead(ctx, entities.Actor{ID: "bob"}, sent.ID)
	assert.NoError(t, err)

	messages, err := messenger.ListMessages(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, messages[0].Read)
	assert.NotNil(t, messages[0].ReadAt)
}

func Test_MarkConversationRead_IdempotentAndScopedToRequester(t *testing.T) {

	messenger, _ := newTestMessenger(t)
	ctx := context.Background()
	bob := entities.Actor{ID: "bob"}

	_, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "one"})
	assert.NoError(t, err)
	_, err = messenger.SendMessage(ctx, MessageInput{SenderID: "bob", ReceiverID: "alice", Content: "two"})
	assert.NoError(t, err)

	assert.NoError(t, messenger.MarkConversationRead(ctx, bob, "alice"))

	count, err := messenger.CountUnread(ctx, "bob")
	assert.NoError(t, err)
	assert.Zero(t, count)

	// alice's copy stays unread; bob only marks what he received
	count, err = messenger.CountUnread(ctx, "alice")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// repeating is a no-op, not an error
	assert.NoError(t, messenger.MarkConversationRead(ctx, bob, "alice"))
}

func Test_DeleteMessage_SenderOnly(t *testing.T) {

	messenger, _ := newTestMessenger(t)
	ctx := context.Background()

	sent, err := messenger.SendMessage(ctx, MessageInput{SenderID: "alice", ReceiverID: "bob", Content: "oops"})
	assert.NoError(t, err)

	err = messenger.DeleteMessage(ctx, entities.Actor{ID: "bob"}, sent.ID)
	assert.ErrorIs(t, err, apperror.ErrDenied)

	err = messenger.DeleteMessage(ctx, entities.Actor{ID: "alice"}, sent.ID)
	assert.NoError(t, err)

	err = messenger.DeleteMessage(ctx, entities.Actor{ID: "alice"}, sent.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

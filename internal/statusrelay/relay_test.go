package statusrelay_test

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/nodegraph/internal/notify"
	"github.com/specialistvlad/nodegraph/internal/statusrelay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	event   string
	payload map[string]any
}

func TestRelay_ForwardsNotifications(t *testing.T) {
	var got []emitted
	closed := false
	relay := statusrelay.New("sess-1", func(event string, payload map[string]any) {
		got = append(got, emitted{event, payload})
	}, func() { closed = true })

	ch := notify.NewChannel()
	unsubscribe := ch.Subscribe(relay)
	defer unsubscribe()

	ch.ProcessStart()
	ch.Warning("Subset", "Some input products are missing. Node can not be validated")
	ch.Progress(50)
	ch.ProcessEnd()
	relay.Close()

	require.Len(t, got, 4)
	assert.Equal(t, statusrelay.EventProcess, got[0].event)
	assert.Equal(t, "start", got[0].payload["phase"])

	assert.Equal(t, statusrelay.EventNotification, got[1].event)
	assert.Equal(t, "Subset", got[1].payload["node"])
	assert.Equal(t, notify.Warning.String(), got[1].payload["level"])
	assert.Equal(t, "sess-1", got[1].payload["session"])
	_, err := time.Parse(time.RFC3339Nano, got[1].payload["time"].(string))
	assert.NoError(t, err)

	assert.Equal(t, statusrelay.EventProgress, got[2].event)
	assert.Equal(t, 50, got[2].payload["percent"])
	assert.Equal(t, "end", got[3].payload["phase"])
	assert.True(t, closed)
}

func TestDial_RejectsBadURL(t *testing.T) {
	_, err := statusrelay.Dial(context.Background(), statusrelay.Config{URL: "not a url"}, "s")
	require.Error(t, err)
}

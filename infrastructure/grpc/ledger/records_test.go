package ledger

import (
	"strings"
	"testing"

	"chat-store/domain"

	"github.com/stretchr/testify/require"
)

func TestLoadRecords(t *testing.T) {
	req := require.New(t)
	input := strings.Join([]string{
		"# roster",
		`{"kind": "AddPeer", "account-id": "` + bob.String() + `", "name": "Bob", "role": "friend"}`,
		"",
		`{"kind": "DeletePeer", "id": "` + bob.String() + `"}`,
	}, "\r\n")

	records, err := LoadRecords(strings.NewReader(input))

	req.NoError(err)
	req.Len(records, 2)
	tx, err := DecodeRecord(records[0])
	req.NoError(err)
	req.Equal(domain.AddPeer{AccountID: bob, Name: "Bob", Role: domain.RoleFriend}, tx)
	tx, err = DecodeRecord(records[1])
	req.NoError(err)
	req.Equal(domain.Delete{Target: domain.KindPeer, ID: bob}, tx)
}

func TestLoadRecords_ReportsLine(t *testing.T) {
	req := require.New(t)

	_, err := LoadRecords(strings.NewReader("{\"kind\": \"AddPeer\"}\n{not json\n"))

	req.Error(err)
	req.Contains(err.Error(), "line 2")
}

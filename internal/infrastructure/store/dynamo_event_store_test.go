package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items per table and supports the query shapes the store issues.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string][]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := *in.TableName
	id := in.Item["aggregate_id"].(*types.AttributeValueMemberS).Value
	if in.ConditionExpression == nil {
		// snapshot table: overwrite by key
		for i, item := range f.tables[table] {
			if item["aggregate_id"].(*types.AttributeValueMemberS).Value == id {
				f.tables[table][i] = in.Item
				return &dynamodb.PutItemOutput{}, nil
			}
		}
	}
	f.tables[table] = append(f.tables[table], in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := in.Key["aggregate_id"].(*types.AttributeValueMemberS).Value
	for _, item := range f.tables[*in.TableName] {
		if item["aggregate_id"].(*types.AttributeValueMemberS).Value == id {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := in.ExpressionAttributeValues[":aid"].(*types.AttributeValueMemberS).Value
	from := 0
	if v, ok := in.ExpressionAttributeValues[":ver"]; ok {
		from, _ = strconv.Atoi(v.(*types.AttributeValueMemberN).Value)
	}

	var out []map[string]types.AttributeValue
	for _, item := range f.tables[*in.TableName] {
		if item["aggregate_id"].(*types.AttributeValueMemberS).Value != id {
			continue
		}
		if versionOf(item) > from {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if in.ScanIndexForward != nil && !*in.ScanIndexForward {
			return versionOf(out[i]) > versionOf(out[j])
		}
		return versionOf(out[i]) < versionOf(out[j])
	})
	if in.Limit != nil && int(*in.Limit) < len(out) {
		out = out[:*in.Limit]
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

func versionOf(item map[string]types.AttributeValue) int {
	var v struct {
		Version int `dynamodbav:"version"`
	}
	_ = attributevalue.UnmarshalMap(item, &v)
	return v.Version
}

// ============================================
// DynamoEventStore Tests
// ============================================

func TestDynamoEventStore_AppendAndReplay(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	es := NewDynamoEventStore(newFakeDynamo(), "events", "snapshots", pub)

	for _, product := range []string{"p1", "p2", "p3"} {
		_, err := es.Append(ctx, "cart-1", "Cart", "ItemAddedToCart", map[string]string{"productId": product})
		require.NoError(t, err)
	}

	events, err := es.GetEvents(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Version)
		assert.Equal(t, "ItemAddedToCart", e.EventType)
	}
	assert.JSONEq(t, `{"productId":"p3"}`, string(events[2].Data))
	assert.Len(t, pub.events, 3)

	tail, err := es.GetEventsFromVersion(ctx, "cart-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, 3, tail[0].Version)
}

func TestDynamoEventStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	es := NewDynamoEventStore(newFakeDynamo(), "events", "snapshots", nil)

	snap, err := es.GetSnapshot(ctx, "cart-1")
	require.NoError(t, err)
	assert.Nil(t, snap)

	state := json.RawMessage(`{"id":"cart-1","items":[]}`)
	require.NoError(t, es.SaveSnapshot(ctx, &Snapshot{
		AggregateID:   "cart-1",
		AggregateType: "Cart",
		Version:       10,
		State:         state,
		CreatedAt:     time.Now(),
	}))

	snap, err = es.GetSnapshot(ctx, "cart-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 10, snap.Version)
	assert.JSONEq(t, string(state), string(snap.State))
}

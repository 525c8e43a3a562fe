package output

import (
	"context"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// inserter MongoDB集合的批量写入接口（*mongo.Collection）
type inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoRecorder 将逐步记录批量写入MongoDB
// 功能：缓存记录，达到批量大小或关闭时写入
type MongoRecorder struct {
	client *mongo.Client // 为nil时不负责断开连接
	col    inserter
	batch  int
	buf    []interface{}
}

// NewMongoRecorder 根据输出配置连接MongoDB
// 说明：o.URI为空时返回NopRecorder
func NewMongoRecorder(o config.Output) Recorder {
	if o.URI == "" {
		return NopRecorder{}
	}
	client := mongoutil.NewClient(o.URI)
	col := client.Database(o.DB).Collection(o.Col)
	log.Infof("record steps to mongo %s.%s", o.DB, o.Col)
	return newMongoRecorder(client, col, o.Batch)
}

func newMongoRecorder(client *mongo.Client, col inserter, batch int) *MongoRecorder {
	if batch <= 0 {
		batch = 1
	}
	return &MongoRecorder{
		client: client,
		col:    col,
		batch:  batch,
		buf:    make([]interface{}, 0, batch),
	}
}

// Record 缓存一条记录，缓存满时写入
func (r *MongoRecorder) Record(rec StepRecord) error {
	r.buf = append(r.buf, rec)
	if len(r.buf) >= r.batch {
		return r.flush(context.Background())
	}
	return nil
}

func (r *MongoRecorder) flush(ctx context.Context) error {
	if len(r.buf) == 0 {
		return nil
	}
	res, err := r.col.InsertMany(ctx, r.buf)
	if err != nil {
		return errors.Wrap(err, "mongo insert")
	}
	log.Debugf("insert %d records", len(res.InsertedIDs))
	r.buf = r.buf[:0]
	return nil
}

// Close 写入剩余记录并断开连接
func (r *MongoRecorder) Close(ctx context.Context) error {
	err := r.flush(ctx)
	if r.client != nil {
		if e := r.client.Disconnect(ctx); e != nil && err == nil {
			err = errors.Wrap(e, "mongo disconnect")
		}
	}
	return err
}

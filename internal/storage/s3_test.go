package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeS3 is an in-memory bucket implementing s3API.
type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3KV(t *testing.T) {
	suite.Run(t, &kvSuite{newKV: func(*testing.T) KV {
		return &S3KV{client: newFakeS3(), bucket: "favs", prefix: "recipehub/"}
	}})
}

func TestS3KVObjectLayout(t *testing.T) {
	fake := newFakeS3()
	kv := &S3KV{client: fake, bucket: "favs", prefix: "recipehub/"}

	require.NoError(t, kv.Set(context.Background(), "my_recipe_favs", []byte("[]")))
	assert.Contains(t, fake.objects, "favs/recipehub/my_recipe_favs.json")
}

func TestS3KVPutError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	kv := &S3KV{client: fake, bucket: "favs"}

	err := kv.Set(context.Background(), "k", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

// Package repository provides methods to initialize the db and query the
// grid-point and wind-sample collections.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nrel/windwatts-core/internal/wind"
)

// DB collections.
const (
	gridPointsCollection  = "gridPoints"
	windSamplesCollection = "windSamples"
)

// DB errors.
var (
	ErrNoGridPoints           = errors.New("there are no grid points for the given model yet")
	ErrNoWindDataForGridPoint = errors.New("there is no wind data for the given grid point")
)

// Repository wraps the database and mongo client.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a new repository from the mongo connection parameters.
func New(connString, dbName string) (*Repository, error) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewMongoDBClient(ctxWithTimeout, connString, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	db := client.Database(dbName)

	err = createIndexes(ctxWithTimeout, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Repository{
		client: client,
		db:     db,
	}, nil
}

// CreateIndexes creates necessary indexes for collections.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	indexModelGridPoints := mongo.IndexModel{
		Keys:    bson.D{{Key: "model", Value: 1}, {Key: "index", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := db.Collection(gridPointsCollection).Indexes().CreateOne(ctx, indexModelGridPoints)
	if err != nil {
		return fmt.Errorf("failed to create unique grid point index: %w", err)
	}

	indexWindSamples := mongo.IndexModel{
		Keys: bson.D{
			{Key: "model", Value: 1},
			{Key: "gridIndex", Value: 1},
			{Key: "time", Value: 1},
		},
	}

	_, err = db.Collection(windSamplesCollection).Indexes().CreateOne(ctx, indexWindSamples)
	if err != nil {
		return fmt.Errorf("failed to create wind sample index: %w", err)
	}

	return nil
}

// Close closes the mongo db connection.
func (r *Repository) Close() error {
	if err := r.client.Disconnect(context.TODO()); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	return nil
}

type gridPointDoc struct {
	Model     string  `bson:"model"`
	Index     string  `bson:"index"`
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

type heightReading struct {
	Speed     float64 `bson:"speed"`
	Direction float64 `bson:"direction"`
}

type windSampleDoc struct {
	Model     string                   `bson:"model"`
	GridIndex string                   `bson:"gridIndex"`
	Time      time.Time                `bson:"time"`
	Year      int                      `bson:"year"`
	Heights   map[string]heightReading `bson:"heights"`
}

// InsertGridPoints inserts the grid point set of a model into the gridPoints
// collection.
func (r *Repository) InsertGridPoints(ctx context.Context, model string, points []wind.GridPoint) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	m := make([]interface{}, 0, len(points))
	for _, p := range points {
		m = append(m, gridPointDoc{
			Model:     model,
			Index:     p.Index,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}

	res, err := r.db.Collection(gridPointsCollection).InsertMany(ctxWithTimeout, m)
	if err != nil {
		return err
	}
	if len(res.InsertedIDs) != len(m) {
		return errors.New("not all data was inserted")
	}

	return nil
}

// GetGridPoints gets the grid point set of a model.
func (r *Repository) GetGridPoints(ctx context.Context, model string) ([]wind.GridPoint, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"model": model}

	points, err := r.filterGridPoints(ctxWithTimeout, filter, nil)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoGridPoints
	}
	if err != nil {
		return nil, err
	}

	return points, nil
}

func (r *Repository) filterGridPoints(ctx context.Context, filter primitive.M, opts *options.FindOptions) ([]wind.GridPoint, error) {
	var points []wind.GridPoint

	cur, err := r.db.Collection(gridPointsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		doc := gridPointDoc{}
		err := cur.Decode(&doc)
		if err != nil {
			return nil, err
		}

		points = append(points, wind.GridPoint{
			Index:     doc.Index,
			Latitude:  doc.Latitude,
			Longitude: doc.Longitude,
		})
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return points, nil
}

// InsertWindSamples inserts per-timestep multi-height wind readings for a
// grid point.
func (r *Repository) InsertWindSamples(ctx context.Context, model, gridIndex string, series *wind.HeightedSeries) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	heights := series.Heights()
	if len(heights) == 0 {
		return errors.New("heighted series has no anchors")
	}

	reference, _ := series.At(heights[0])

	docs := make([]interface{}, 0, len(reference))
	for i, ref := range reference {
		readings := make(map[string]heightReading, len(heights))
		for _, h := range heights {
			anchor, _ := series.At(h)
			readings[strconv.FormatFloat(h, 'f', -1, 64)] = heightReading{
				Speed:     anchor[i].Speed,
				Direction: anchor[i].Direction,
			}
		}

		docs = append(docs, windSampleDoc{
			Model:     model,
			GridIndex: gridIndex,
			Time:      ref.Time,
			Year:      ref.Time.Year(),
			Heights:   readings,
		})
	}

	res, err := r.db.Collection(windSamplesCollection).InsertMany(ctxWithTimeout, docs)
	if err != nil {
		return err
	}
	if len(res.InsertedIDs) != len(docs) {
		return errors.New("not all data was inserted")
	}

	return nil
}

// GetHeightedSeries gets the multi-height series of a grid point, optionally
// restricted to the given years, ordered by time.
func (r *Repository) GetHeightedSeries(ctx context.Context, model, gridIndex string, years []int) (*wind.HeightedSeries, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"model":     model,
		"gridIndex": gridIndex,
	}
	if len(years) > 0 {
		filter["year"] = bson.M{"$in": years}
	}

	opts := options.Find().SetSort(bson.M{"time": 1})

	docs, err := r.filterWindSamples(ctxWithTimeout, filter, opts)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoWindDataForGridPoint
	}
	if err != nil {
		return nil, err
	}

	return buildHeightedSeries(docs)
}

func (r *Repository) filterWindSamples(ctx context.Context, filter primitive.M, opts *options.FindOptions) ([]windSampleDoc, error) {
	var docs []windSampleDoc

	cur, err := r.db.Collection(windSamplesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		doc := windSampleDoc{}
		err := cur.Decode(&doc)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return docs, nil
}

func buildHeightedSeries(docs []windSampleDoc) (*wind.HeightedSeries, error) {
	perHeight := make(map[float64][]wind.Sample)

	for _, doc := range docs {
		for key, reading := range doc.Heights {
			height, err := strconv.ParseFloat(key, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid height key %q: %w", key, err)
			}

			perHeight[height] = append(perHeight[height], wind.Sample{
				Time:      doc.Time,
				Speed:     reading.Speed,
				Direction: reading.Direction,
			})
		}
	}

	series := wind.NewHeightedSeries()
	for height, samples := range perHeight {
		if err := series.Add(height, samples); err != nil {
			return nil, fmt.Errorf("failed to assemble heighted series: %w", err)
		}
	}

	return series, nil
}

// CheckIfGridDataExists checks whether any grid points are stored for the
// given model.
func (r *Repository) CheckIfGridDataExists(ctx context.Context, model string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	num, err := r.db.Collection(gridPointsCollection).CountDocuments(ctxWithTimeout, bson.M{"model": model})

	return num > 0, err
}

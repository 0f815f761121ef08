package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"gowhere/internal/domain/embedded"
)

// fragmentUpdate translates a single-item change on the named child array into
// an UpdateOne filter and update document.
//
// Set and pull filters also match the child identity, so a missing child
// surfaces as a zero match count instead of a silent no-op.
func fragmentUpdate(array string, change embedded.Fragment) (filter, update bson.D, err error) {
	switch change.Mode {
	case embedded.ModeSet:
		filter = bson.D{{Key: "_id", Value: change.Parent}, {Key: array + "._id", Value: change.Child}}
		set := make(bson.D, 0, len(change.Fields))
		for _, f := range change.Fields {
			set = append(set, bson.E{Key: array + ".$." + f.Name, Value: f.Value})
		}
		if len(set) == 0 {
			// $set must not be empty; rewriting the identity is a no-op
			set = bson.D{{Key: array + ".$._id", Value: change.Child}}
		}
		return filter, bson.D{{Key: "$set", Value: set}}, nil

	case embedded.ModePull:
		filter = bson.D{{Key: "_id", Value: change.Parent}, {Key: array + "._id", Value: change.Child}}
		update = bson.D{{Key: "$pull", Value: bson.D{{Key: array, Value: bson.D{{Key: "_id", Value: change.Child}}}}}}
		return filter, update, nil

	case embedded.ModePush:
		if change.Item == nil {
			return nil, nil, fmt.Errorf("fragmentUpdate: push on %s without item", array)
		}
		filter = bson.D{{Key: "_id", Value: change.Parent}}
		update = bson.D{{Key: "$push", Value: bson.D{{Key: array, Value: change.Item}}}}
		return filter, update, nil

	default:
		return nil, nil, fmt.Errorf("fragmentUpdate: unsupported mode %s on %s", change.Mode, array)
	}
}

// setUpdate wraps the supplied top-level fields in $set. It returns an empty
// document when nothing was supplied.
func setUpdate(set bson.D) bson.D {
	if len(set) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$set", Value: set}}
}

// patchUpdate builds a partial update: supplied fields go to $set and added
// children are appended to array with $push $each. Children already stored are
// never rewritten, so a concurrent single-item change to the array survives.
func patchUpdate[T any](set bson.D, array string, added []T) bson.D {
	update := setUpdate(set)
	if len(added) > 0 {
		update = append(update, bson.E{Key: "$push", Value: bson.D{
			{Key: array, Value: bson.D{{Key: "$each", Value: added}}},
		}})
	}
	return update
}

package docstore

import (
	"fmt"
	"strings"
)

const (
	profileCollection      = "profile"
	profileDocumentID      = "settings"
	workoutLogCollection   = "workout_log"
	nutritionLogCollection = "nutrition_log"
)

// ProfilePath is the path of the single profile document of a user.
func ProfilePath(userID string) string {
	return fmt.Sprintf("users/%s/%s/%s", userID, profileCollection, profileDocumentID)
}

func WorkoutLogCollection(userID string) string {
	return fmt.Sprintf("users/%s/%s", userID, workoutLogCollection)
}

func NutritionLogCollection(userID string) string {
	return fmt.Sprintf("users/%s/%s", userID, nutritionLogCollection)
}

// DocumentPath joins a collection path and a document id.
func DocumentPath(collection, id string) string {
	return collection + "/" + id
}

// SplitPath returns the collection and the document id of a document path.
func SplitPath(path string) (collection, id string, err error) {
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("invalid document path: %q", path)
	}
	return path[:i], path[i+1:], nil
}

// ValidUserID reports whether the id can be used as a path segment.
func ValidUserID(userID string) bool {
	return userID != "" && !strings.ContainsAny(userID, "/ ")
}

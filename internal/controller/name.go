package controller

import (
	"encoding/hex"
	"strings"

	"trainctl/internal/apperrors"

	"github.com/google/uuid"
)

// jobName derives a display name of the form <repo>-<suffix> from the image
// reference, assuming a <host>/<project>/<repo> path as used by container
// registries. The random suffix makes the name unique across concurrent
// submissions; it is not a secret.
func (c *Controller) jobName() (string, error) {
	segments := strings.Split(c.cfg.Image, "/")
	if len(segments) < 3 {
		return "", apperrors.Configuration("image",
			"the provided image must come from a container registry with a "+
				"<host>/<project>/<repo> path, like gcr.io/my-project/my-repo")
	}

	id := uuid.New()
	return segments[2] + "-" + hex.EncodeToString(id[:]), nil
}

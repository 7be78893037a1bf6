package observability

import "go.opentelemetry.io/otel/attribute"

func regionAttr(region string) attribute.KeyValue {
	return attribute.String("region", region)
}

func imageAttr(image string) attribute.KeyValue {
	return attribute.String("image", image)
}

func stateAttr(state string) attribute.KeyValue {
	return attribute.String("state", state)
}

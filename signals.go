package transcode

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for transcode events.
var (
	SignalProcessorCreated = capitan.NewSignal("transcode.processor.created", "Processor instantiated")
	SignalWriteStart       = capitan.NewSignal("transcode.write.start", "Write operation beginning")
	SignalWriteComplete    = capitan.NewSignal("transcode.write.complete", "Write operation finished")
	SignalReadStart        = capitan.NewSignal("transcode.read.start", "Read operation beginning")
	SignalReadComplete     = capitan.NewSignal("transcode.read.complete", "Read operation finished")
	SignalArmorMarshal     = capitan.NewSignal("transcode.armor.marshal", "Armored marshal finished")
	SignalArmorUnmarshal   = capitan.NewSignal("transcode.armor.unmarshal", "Armored unmarshal finished")
)

// Keys for typed event data.
var (
	KeyContentType    = capitan.NewStringKey("content_type")
	KeyTypeName       = capitan.NewStringKey("type_name")
	KeySize           = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyDigestedCount  = capitan.NewIntKey("digested_count")
	KeyEncodedCount   = capitan.NewIntKey("encoded_count")
	KeyDecodedCount   = capitan.NewIntKey("decoded_count")
	KeyValidatedCount = capitan.NewIntKey("validated_count")
)

func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

func emitWriteStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalWriteStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

func emitWriteComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, digested, encoded int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyDigestedCount.Field(digested),
		KeyEncodedCount.Field(encoded),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalWriteComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalWriteComplete, fields...)
	}
}

func emitReadStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalReadStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

func emitReadComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, decoded, validated int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyDecodedCount.Field(decoded),
		KeyValidatedCount.Field(validated),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalReadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalReadComplete, fields...)
	}
}

func emitArmorMarshal(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := armorFields(contentType, size, duration)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalArmorMarshal, fields...)
	} else {
		capitan.Emit(ctx, SignalArmorMarshal, fields...)
	}
}

func emitArmorUnmarshal(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := armorFields(contentType, size, duration)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalArmorUnmarshal, fields...)
	} else {
		capitan.Emit(ctx, SignalArmorUnmarshal, fields...)
	}
}

func armorFields(contentType string, size int, duration time.Duration) []capitan.Field {
	return []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
}

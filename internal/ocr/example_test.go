package ocr_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"patientid/internal/locale"
	"patientid/internal/ocr"
)

// Example demonstrates recognizing a photographed order form.
func Example() {
	// Credentials come from GOOGLE_APPLICATION_CREDENTIALS or
	// GOOGLE_CREDENTIALS, loaded from .env in main.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recognizer, err := ocr.New(ctx, ocr.Config{Provider: ocr.ProviderVision, Locale: locale.Chinese})
	if err != nil {
		log.Fatalf("Failed to create recognizer: %v", err)
	}

	img, err := os.Open("order_form.jpg")
	if err != nil {
		log.Fatalf("Failed to open image: %v", err)
	}
	defer img.Close()

	doc, err := recognizer.Recognize(ctx, img)
	if err != nil {
		log.Fatalf("Failed to recognize image: %v", err)
	}

	fmt.Printf("Recognized %d blocks:\n%s\n", len(doc.Blocks), doc.FullText())
}

// ExampleTextRecognizer replays a saved OCR text dump.
func ExampleTextRecognizer() {
	doc, err := ocr.TextRecognizer{}.Recognize(context.Background(), strings.NewReader("姓名:王小明\n病歷號:A123456\n"))
	if err != nil {
		log.Fatal(err)
	}
	for _, b := range doc.Blocks {
		fmt.Println(b.Text)
	}
	// Output:
	// 姓名:王小明
	// 病歷號:A123456
}

// ExampleOCRError demonstrates matching wrapped errors.
func ExampleOCRError() {
	_, err := ocr.LoadLayout(strings.NewReader(`{"text":""}`))

	switch {
	case errors.Is(err, ocr.ErrEmptyDocument):
		fmt.Println("no readable text")
	case errors.Is(err, ocr.ErrInvalidLayout):
		fmt.Println("bad layout file")
	}
	// Output:
	// no readable text
}

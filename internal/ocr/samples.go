package ocr

// sampleReceipts are deterministic-content fallback receipts used whenever
// the recognition service is unavailable. One is chosen at random per call.
var sampleReceipts = []string{
	`STARBUCKS
123 MAIN ST
DATE: 12/15/2023
TIME: 09:30 AM

LATTE GRANDE          $4.95
CROISSANT             $3.25
BAGEL                 $2.75

SUBTOTAL              $10.95
TAX                   $0.88
TOTAL                 $11.83

THANK YOU!`,

	`WALMART SUPERSTORE
456 OAK AVENUE
DATE: 12/14/2023

MILK 2% 1GAL         $3.99
BREAD WHOLE WHEAT    $2.49
BANANAS 2.5LB        $1.99
CHICKEN BREAST       $8.99
RICE WHITE 5LB       $4.99

SUBTOTAL             $22.45
TAX                  $1.80
TOTAL                $24.25`,

	`SHELL GAS STATION
789 HIGHWAY 101
DATE: 12/13/2023

UNLEADED GAS
GALLONS: 12.5
PRICE/GAL: $3.49
AMOUNT: $43.63

TOTAL                $43.63

THANK YOU!`,

	`TARGET STORE
321 SHOPPING CTR
DATE: 12/12/2023

PAPER TOWELS         $5.99
DISH SOAP            $2.99
TOOTHPASTE           $3.49
SHAMPOO              $4.99
DEODORANT            $3.99

SUBTOTAL             $21.45
TAX                  $1.72
TOTAL                $23.17`,

	`MCDONALD'S
654 FAST FOOD BLVD
DATE: 12/11/2023

BIG MAC COMBO        $8.99
FRIES MEDIUM         $2.49
COKE LARGE           $1.99
APPLE PIE            $1.49

SUBTOTAL             $14.96
TAX                  $1.20
TOTAL                $16.16`,
}

// SampleCount is the number of canned fallback receipts.
func SampleCount() int {
	return len(sampleReceipts)
}

// SampleAt returns the canned receipt at index i, for tests and demos.
func SampleAt(i int) string {
	return sampleReceipts[i]
}

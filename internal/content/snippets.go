package content

// snippets holds the built-in per-language code sets served by the
// infallible local provider.
var snippets = map[string][]string{
	"python": {
		"def classify_number(n: int) -> str:\n    if n < 0:\n        return 'negative'\n    elif n == 0:\n        return 'zero'\n    else:\n        return 'positive'",
		"squares = {x: x ** 2 for x in range(1, 11)}",
		"for index, value in enumerate(['apple', 'banana', 'cherry']):\n    print(f'{index}: {value}')",
		"try:\n    result = 10 / divisor\nexcept ZeroDivisionError:\n    result = float('inf')",
		"even_squares = (x ** 2 for x in range(10) if x % 2 == 0)",
	},
	"rust": {
		"fn factorial(n: u32) -> u32 {\n    match n {\n        0 => 1,\n        _ => n * factorial(n - 1),\n    }\n}",
		"let numbers = vec![1, 2, 3, 4, 5];\nfor n in numbers.iter() {\n    println!(\"{}\", n);\n}",
		"fn divide(a: f64, b: f64) -> Option<f64> {\n    if b == 0.0 {\n        None\n    } else {\n        Some(a / b)\n    }\n}",
	},
	"c": {
		"int sum_array(int arr[], int size) {\n    int total = 0;\n    for (int i = 0; i < size; i++) {\n        total += arr[i];\n    }\n    return total;\n}",
		"void swap(int *a, int *b) {\n    int temp = *a;\n    *a = *b;\n    *b = temp;\n}",
		"typedef struct {\n    double x;\n    double y;\n} Point;",
	},
	"cpp": {
		"template<typename T>\nT max(T a, T b) {\n    return (a > b) ? a : b;\n}",
		"auto add = [](int a, int b) { return a + b; };\nint result = add(5, 3);",
		"namespace geometry {\n    const double PI = 3.141592653589793;\n}",
	},
	"go": {
		"func sum(nums []int) int {\n    total := 0\n    for _, n := range nums {\n        total += n\n    }\n    return total\n}",
		"if err := run(ctx); err != nil {\n    return fmt.Errorf(\"run: %w\", err)\n}",
		"type Point struct {\n    X float64\n    Y float64\n}",
		"ch := make(chan int, 1)\nch <- 42\nclose(ch)",
	},
}
